package dto

import (
	"time"

	"github.com/taskhub/task-system/internal/models"
	"github.com/taskhub/task-system/internal/utils"
)

// TaskTypeDTO represents a task type in responses
type TaskTypeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TaskDTO represents a task in responses
type TaskDTO struct {
	ID                 uint64              `json:"id"`
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	Deadline           time.Time           `json:"deadline"`
	IsComplete         bool                `json:"is_complete"`
	Priority           models.TaskPriority `json:"priority"`
	PriorityBadgeClass string              `json:"priority_badge_class"`
	TaskTypeID         uint64              `json:"task_type_id"`
	TeamID             *uint64             `json:"team_id"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	TaskType           *TaskTypeDTO        `json:"task_type,omitempty"`
	Team               *TeamDTO            `json:"team,omitempty"`
	Assignees          []WorkerDTO         `json:"assignees,omitempty"`
}

// TaskListResponse represents a paginated task listing
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTaskTypeDTO converts a TaskType model to TaskTypeDTO
func ToTaskTypeDTO(taskType models.TaskType) TaskTypeDTO {
	return TaskTypeDTO{
		ID:   taskType.ID,
		Name: taskType.Name,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                 task.ID,
		Name:               task.Name,
		Description:        task.Description,
		Deadline:           task.Deadline,
		IsComplete:         task.IsComplete,
		Priority:           task.Priority,
		PriorityBadgeClass: task.PriorityBadgeClass(),
		TaskTypeID:         task.TaskTypeID,
		TeamID:             task.TeamID,
		CreatedAt:          task.CreatedAt,
		UpdatedAt:          task.UpdatedAt,
	}

	// Include task type if preloaded
	if task.TaskType.ID != 0 {
		taskType := ToTaskTypeDTO(task.TaskType)
		dto.TaskType = &taskType
	}

	// Include team if preloaded
	if task.Team != nil && task.Team.ID != 0 {
		team := ToTeamDTO(*task.Team)
		dto.Team = &team
	}

	// Include assignees if preloaded
	if len(task.Assignments) > 0 {
		dto.Assignees = make([]WorkerDTO, len(task.Assignments))
		for i, assignment := range task.Assignments {
			dto.Assignees[i] = ToWorkerDTO(assignment.Worker)
		}
	}

	return dto
}

// ToTaskListResponse converts tasks to a paginated listing response
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Pagination: utils.ToPaginationResponse(params, total),
	}
}
