package services

import (
	"fmt"

	"github.com/taskhub/task-system/internal/models"
	"github.com/taskhub/task-system/internal/repository"
)

// DashboardService aggregates the index page counters.
type DashboardService struct {
	workerRepo  repository.WorkerRepository
	taskRepo    repository.TaskRepository
	catalogRepo repository.CatalogRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	workerRepo repository.WorkerRepository,
	taskRepo repository.TaskRepository,
	catalogRepo repository.CatalogRepository,
) *DashboardService {
	return &DashboardService{
		workerRepo:  workerRepo,
		taskRepo:    taskRepo,
		catalogRepo: catalogRepo,
	}
}

// DashboardCounts holds the entity counters shown on the index page.
type DashboardCounts struct {
	NumWorkers        int64 `json:"num_workers"`
	NumTasks          int64 `json:"num_tasks"`
	NumCompletedTasks int64 `json:"num_completed_tasks"`
	NumTaskTypes      int64 `json:"num_task_types"`
	NumPositions      int64 `json:"num_positions"`
}

// Counts returns the dashboard counters.
func (s *DashboardService) Counts() (*DashboardCounts, error) {
	counts := &DashboardCounts{}
	var err error

	if counts.NumWorkers, err = s.workerRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count workers: %w", err)
	}
	if counts.NumTasks, err = s.taskRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	if counts.NumCompletedTasks, err = s.taskRepo.CountCompleted(); err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	if counts.NumTaskTypes, err = s.catalogRepo.CountTaskTypes(); err != nil {
		return nil, fmt.Errorf("failed to count task types: %w", err)
	}
	if counts.NumPositions, err = s.catalogRepo.CountPositions(); err != nil {
		return nil, fmt.Errorf("failed to count positions: %w", err)
	}

	return counts, nil
}

// ListTaskTypes returns the task type vocabulary, alphabetical.
func (s *DashboardService) ListTaskTypes() ([]models.TaskType, error) {
	return s.catalogRepo.ListTaskTypes()
}

// ListPositions returns the position vocabulary.
func (s *DashboardService) ListPositions() ([]models.Position, error) {
	return s.catalogRepo.ListPositions()
}
