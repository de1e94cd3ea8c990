package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/task-system/internal/constants"
	"github.com/taskhub/task-system/internal/dto"
	apierrors "github.com/taskhub/task-system/internal/errors"
	"github.com/taskhub/task-system/internal/models"
	"github.com/taskhub/task-system/internal/services"
	"github.com/taskhub/task-system/internal/utils"
)

// TaskHandler coordinates the task CRUD handlers.
type TaskHandler struct {
	taskService      *services.TaskService
	teamService      *services.TeamService
	workerService    *services.WorkerService
	dashboardService *services.DashboardService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(
	taskService *services.TaskService,
	teamService *services.TeamService,
	workerService *services.WorkerService,
	dashboardService *services.DashboardService,
) *TaskHandler {
	return &TaskHandler{
		taskService:      taskService,
		teamService:      teamService,
		workerService:    workerService,
		dashboardService: dashboardService,
	}
}

// TaskRequest is the full task form. Create and update submit every
// field.
type TaskRequest struct {
	Name        string    `form:"name" json:"name" binding:"required"`
	Description string    `form:"description" json:"description"`
	Deadline    time.Time `form:"deadline" json:"deadline" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	IsComplete  bool      `form:"is_complete" json:"is_complete"`
	Priority    string    `form:"priority" json:"priority"`
	TaskType    uint64    `form:"task_type" json:"task_type" binding:"required"`
	Team        *uint64   `form:"team" json:"team"`
	Assignees   []uint64  `form:"assignees" json:"assignees"`
}

func (r TaskRequest) toInput() services.TaskInput {
	return services.TaskInput{
		Name:        r.Name,
		Description: r.Description,
		Deadline:    r.Deadline,
		IsComplete:  r.IsComplete,
		Priority:    models.TaskPriority(r.Priority),
		TaskTypeID:  r.TaskType,
		TeamID:      r.Team,
		AssigneeIDs: r.Assignees,
	}
}

// ListTasks returns the paginated task list with the optional name
// search applied.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c, constants.TaskPageSize)

	tasks, total, err := h.taskService.ListTasks(services.TaskListInput{
		Search:   c.Query("search"),
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// GetTask returns a task with its type, team and assignees.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// TaskForm serves the data the task form needs: the task type, team and
// worker vocabularies.
func (h *TaskHandler) TaskForm(c *gin.Context) {
	taskTypes, err := h.dashboardService.ListTaskTypes()
	if err != nil {
		apierrors.InternalError(c, "Failed to load task types")
		return
	}

	teams, err := h.teamService.ListTeams()
	if err != nil {
		apierrors.InternalError(c, "Failed to load teams")
		return
	}

	workers, _, err := h.workerService.ListWorkers(0, 0)
	if err != nil {
		apierrors.InternalError(c, "Failed to load workers")
		return
	}

	taskTypeDTOs := make([]dto.TaskTypeDTO, len(taskTypes))
	for i, taskType := range taskTypes {
		taskTypeDTOs[i] = dto.ToTaskTypeDTO(taskType)
	}
	teamDTOs := make([]dto.TeamDTO, len(teams))
	for i, team := range teams {
		teamDTOs[i] = dto.ToTeamDTO(team)
	}
	workerDTOs := make([]dto.WorkerDTO, len(workers))
	for i, worker := range workers {
		workerDTOs[i] = dto.ToWorkerDTO(worker)
	}

	c.JSON(http.StatusOK, gin.H{
		"task_types": taskTypeDTOs,
		"teams":      teamDTOs,
		"workers":    workerDTOs,
	})
}

// CreateTask creates a task from the submitted form and redirects to its
// detail view.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(req.toInput())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.Redirect(http.StatusFound, taskDetailPath(task.ID))
}

// UpdateTask applies the submitted form to the task and redirects to its
// detail view.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(taskID, req.toInput())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.Redirect(http.StatusFound, taskDetailPath(task.ID))
}

// DeleteTask removes the task and redirects to the list view.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/list/")
}

// MarkTaskDone idempotently sets the completion flag and redirects to
// the detail view. There is no way back to incomplete.
func (h *TaskHandler) MarkTaskDone(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.MarkDone(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.Redirect(http.StatusFound, taskDetailPath(task.ID))
}

func taskDetailPath(id uint64) string {
	return fmt.Sprintf("/task_detail/%d/", id)
}

// parseIDParam reads the :id path parameter, answering 404 on garbage.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return id, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskNameRequired),
		errors.Is(err, services.ErrDeadlineRequired),
		errors.Is(err, services.ErrDeadlineInPast),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrTaskTypeNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrInvalidAssignee):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
