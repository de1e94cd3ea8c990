package repository

import (
	"github.com/taskhub/task-system/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering, ordering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task and its assignment rows
	Delete(id uint64) error

	// ReplaceAssignees replaces the task's assignee set atomically
	ReplaceAssignees(taskID uint64, workerIDs []uint64) error

	// Count returns the total number of tasks
	Count() (int64, error)

	// CountCompleted returns the number of completed tasks
	CountCompleted() (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	// Search is a case-insensitive substring match on the task name.
	Search   string
	Page     int
	PageSize int
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// Create creates a new team
	Create(team *models.Team) error

	// FindByID finds a team by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Team, error)

	// List returns all teams
	List() ([]models.Team, error)

	// Update updates a team
	Update(team *models.Team) error

	// Delete removes a team, its membership rows, and detaches its tasks
	Delete(id uint64) error

	// ReplaceMembers replaces the team's member set atomically
	ReplaceMembers(teamID uint64, workerIDs []uint64) error
}

// WorkerRepository defines the interface for worker data access
type WorkerRepository interface {
	// Create creates a new worker
	Create(worker *models.Worker) error

	// FindByID finds a worker by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Worker, error)

	// FindByUsername finds a worker by username
	FindByUsername(username string) (*models.Worker, error)

	// FindByEmail finds a worker by email
	FindByEmail(email string) (*models.Worker, error)

	// List retrieves workers with pagination
	List(page, pageSize int) ([]models.Worker, int64, error)

	// Update updates a worker's scalar fields
	Update(worker *models.Worker) error

	// TeamIDs returns the IDs of the teams the worker belongs to
	TeamIDs(workerID uint64) ([]uint64, error)

	// ReplaceTeams replaces the worker's team memberships atomically
	ReplaceTeams(workerID uint64, teamIDs []uint64) error

	// CountByIDs counts how many of the given worker IDs exist
	CountByIDs(workerIDs []uint64) (int64, error)

	// Count returns the total number of workers
	Count() (int64, error)
}

// CatalogRepository provides access to the controlled vocabularies
// (task types and positions).
type CatalogRepository interface {
	// CreateTaskType creates a task type
	CreateTaskType(taskType *models.TaskType) error

	// FindTaskType finds a task type by ID
	FindTaskType(id uint64) (*models.TaskType, error)

	// ListTaskTypes returns all task types ordered by name
	ListTaskTypes() ([]models.TaskType, error)

	// DeleteTaskType removes a task type and cascades to its tasks
	DeleteTaskType(id uint64) error

	// CountTaskTypes returns the total number of task types
	CountTaskTypes() (int64, error)

	// CreatePosition creates a position
	CreatePosition(position *models.Position) error

	// FindPosition finds a position by ID
	FindPosition(id uint64) (*models.Position, error)

	// ListPositions returns all positions
	ListPositions() ([]models.Position, error)

	// DeletePosition removes a position and cascades to its workers
	DeletePosition(id uint64) error

	// CountPositions returns the total number of positions
	CountPositions() (int64, error)
}
