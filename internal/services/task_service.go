package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/taskhub/task-system/internal/models"
	"github.com/taskhub/task-system/internal/repository"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskNameRequired = errors.New("name is required")
	ErrDeadlineRequired = errors.New("deadline is required")
	ErrDeadlineInPast   = errors.New("Deadline cannot be in the past!")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrTaskTypeNotFound = errors.New("task type not found")
	ErrTeamNotFound     = errors.New("team not found")
	ErrInvalidAssignee  = errors.New("one or more assignees do not exist")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	teamRepo    repository.TeamRepository
	workerRepo  repository.WorkerRepository
	catalogRepo repository.CatalogRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	teamRepo repository.TeamRepository,
	workerRepo repository.WorkerRepository,
	catalogRepo repository.CatalogRepository,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		teamRepo:    teamRepo,
		workerRepo:  workerRepo,
		catalogRepo: catalogRepo,
	}
}

// TaskListInput represents filters for listing tasks
type TaskListInput struct {
	Search   string
	Page     int
	PageSize int
}

// TaskInput carries the full task form: create and update both submit
// every field, so there are no partial-update semantics.
type TaskInput struct {
	Name        string
	Description string
	Deadline    time.Time
	IsComplete  bool
	Priority    models.TaskPriority
	TaskTypeID  uint64
	TeamID      *uint64
	AssigneeIDs []uint64
}

// ListTasks returns tasks matching the optional name search, ordered
// with incomplete tasks first and by priority rank within each group.
func (s *TaskService) ListTasks(input TaskListInput) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "TaskType", "Team", "Assignments", "Assignments.Worker")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask validates the form input and creates the task with its
// assignee set.
func (s *TaskService) CreateTask(input TaskInput) (*models.Task, error) {
	if err := s.validateTaskInput(&input); err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        input.Name,
		Description: input.Description,
		Deadline:    input.Deadline,
		IsComplete:  input.IsComplete,
		Priority:    input.Priority,
		TaskTypeID:  input.TaskTypeID,
		TeamID:      input.TeamID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if len(input.AssigneeIDs) > 0 {
		if err := s.taskRepo.ReplaceAssignees(task.ID, input.AssigneeIDs); err != nil {
			return nil, fmt.Errorf("failed to assign workers: %w", err)
		}
	}

	return task, nil
}

// UpdateTask applies the full form to an existing task and replaces its
// assignee set with the submitted one.
func (s *TaskService) UpdateTask(taskID uint64, input TaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.validateTaskInput(&input); err != nil {
		return nil, err
	}

	task.Name = input.Name
	task.Description = input.Description
	task.Deadline = input.Deadline
	task.IsComplete = input.IsComplete
	task.Priority = input.Priority
	task.TaskTypeID = input.TaskTypeID
	task.TeamID = input.TeamID

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if err := s.taskRepo.ReplaceAssignees(task.ID, input.AssigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to update assignees: %w", err)
	}

	return task, nil
}

// MarkDone sets the completion flag. The transition is idempotent and
// there is no path back to incomplete.
func (s *TaskService) MarkDone(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.IsComplete = true
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to mark task done: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task along with its assignment rows.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (s *TaskService) validateTaskInput(input *TaskInput) error {
	if input.Name == "" {
		return ErrTaskNameRequired
	}
	if input.Deadline.IsZero() {
		return ErrDeadlineRequired
	}
	if input.Deadline.Before(time.Now()) {
		return ErrDeadlineInPast
	}

	if input.Priority == "" {
		input.Priority = models.PriorityLow
	}
	if !input.Priority.Valid() {
		return ErrInvalidPriority
	}

	if _, err := s.catalogRepo.FindTaskType(input.TaskTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskTypeNotFound
		}
		return fmt.Errorf("failed to check task type: %w", err)
	}

	if input.TeamID != nil {
		if _, err := s.teamRepo.FindByID(*input.TeamID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to check team: %w", err)
		}
	}

	if len(input.AssigneeIDs) > 0 {
		count, err := s.workerRepo.CountByIDs(input.AssigneeIDs)
		if err != nil {
			return fmt.Errorf("failed to check assignees: %w", err)
		}
		if int(count) != len(uniqueIDs(input.AssigneeIDs)) {
			return ErrInvalidAssignee
		}
	}

	return nil
}

// uniqueIDs deduplicates an ID list preserving order.
func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
