package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/task-system/internal/constants"
	"github.com/taskhub/task-system/internal/dto"
	apierrors "github.com/taskhub/task-system/internal/errors"
	"github.com/taskhub/task-system/internal/middleware"
	"github.com/taskhub/task-system/internal/services"
	"github.com/taskhub/task-system/internal/utils"
)

// WorkerHandler coordinates the worker listing and self-service profile
// handlers.
type WorkerHandler struct {
	workerService *services.WorkerService
	authService   *services.AuthService
}

// NewWorkerHandler creates a new WorkerHandler.
func NewWorkerHandler(workerService *services.WorkerService, authService *services.AuthService) *WorkerHandler {
	return &WorkerHandler{
		workerService: workerService,
		authService:   authService,
	}
}

// ListWorkers returns the paginated worker list.
func (h *WorkerHandler) ListWorkers(c *gin.Context) {
	params := utils.GetPaginationParams(c, constants.WorkerPageSize)

	workers, total, err := h.workerService.ListWorkers(params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch workers")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerListResponse(workers, params, total))
}

// ProfileForm serves the caller's own profile with its current team
// memberships, prefilling the edit form.
func (h *WorkerHandler) ProfileForm(c *gin.Context) {
	workerID, exists := middleware.GetWorkerID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	worker, err := h.authService.GetWorker(workerID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	teamIDs, err := h.workerService.TeamIDs(workerID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load team memberships")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"worker": dto.ToWorkerDTO(*worker),
		"teams":  teamIDs,
	})
}

// UpdateProfile applies the profile form to the caller's own worker
// record. The target identity always comes from the session, never from
// the request, so editing another worker is structurally impossible.
func (h *WorkerHandler) UpdateProfile(c *gin.Context) {
	workerID, exists := middleware.GetWorkerID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ProfileRequest struct {
		FirstName string   `form:"first_name" json:"first_name"`
		LastName  string   `form:"last_name" json:"last_name"`
		Username  string   `form:"username" json:"username" binding:"required"`
		Email     string   `form:"email" json:"email" binding:"required,email"`
		Position  uint64   `form:"position" json:"position" binding:"required"`
		Teams     []uint64 `form:"teams" json:"teams"`
	}

	var req ProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	_, err := h.workerService.UpdateProfile(workerID, services.ProfileInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Username:   req.Username,
		Email:      req.Email,
		PositionID: req.Position,
		TeamIDs:    req.Teams,
	})
	if err != nil {
		respondWorkerError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/workers/")
}

func respondWorkerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkerNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPositionNotFound),
		errors.Is(err, services.ErrInvalidTeam):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
