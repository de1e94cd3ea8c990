package constants

// Session
const (
	SessionCookieName  = "task_session"
	ContextKeyWorkerID = "worker_id"
)

// Navigation targets
const (
	LoginPath = "/accounts/login/"
	IndexPath = "/"
)

// Pagination. Page sizes are fixed per listing.
const (
	TaskPageSize   = 8
	WorkerPageSize = 10
	MinPage        = 1
)

// Password policy
const MinPasswordLength = 8
