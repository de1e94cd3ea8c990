package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/taskhub/task-system/internal/models"
	"github.com/taskhub/task-system/internal/repository"
)

var ErrInvalidTeam = errors.New("one or more teams do not exist")

// WorkerService handles worker listing and profile updates.
type WorkerService struct {
	workerRepo  repository.WorkerRepository
	teamRepo    repository.TeamRepository
	catalogRepo repository.CatalogRepository
}

// NewWorkerService creates a new WorkerService
func NewWorkerService(
	workerRepo repository.WorkerRepository,
	teamRepo repository.TeamRepository,
	catalogRepo repository.CatalogRepository,
) *WorkerService {
	return &WorkerService{
		workerRepo:  workerRepo,
		teamRepo:    teamRepo,
		catalogRepo: catalogRepo,
	}
}

// ListWorkers returns workers with their positions, paginated.
func (s *WorkerService) ListWorkers(page, pageSize int) ([]models.Worker, int64, error) {
	workers, total, err := s.workerRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workers: %w", err)
	}
	return workers, total, nil
}

// ProfileInput carries the self-service profile form. The target worker
// is never part of the input; callers can only edit themselves.
type ProfileInput struct {
	FirstName  string
	LastName   string
	Username   string
	Email      string
	PositionID uint64
	TeamIDs    []uint64
}

// UpdateProfile applies the profile form to the given worker. Scalar
// fields are persisted first, then the team membership set is replaced
// atomically with the submitted one.
func (s *WorkerService) UpdateProfile(workerID uint64, input ProfileInput) (*models.Worker, error) {
	worker, err := s.workerRepo.FindByID(workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	if other, err := s.workerRepo.FindByUsername(username); err == nil && other.ID != workerID {
		return nil, ErrUsernameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if other, err := s.workerRepo.FindByEmail(email); err == nil && other.ID != workerID {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.catalogRepo.FindPosition(input.PositionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPositionNotFound
		}
		return nil, fmt.Errorf("failed to check position: %w", err)
	}

	if len(input.TeamIDs) > 0 {
		for _, teamID := range uniqueIDs(input.TeamIDs) {
			if _, err := s.teamRepo.FindByID(teamID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrInvalidTeam
				}
				return nil, fmt.Errorf("failed to check team: %w", err)
			}
		}
	}

	worker.FirstName = strings.TrimSpace(input.FirstName)
	worker.LastName = strings.TrimSpace(input.LastName)
	worker.Username = username
	worker.Email = email
	worker.PositionID = input.PositionID

	if err := s.workerRepo.Update(worker); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update worker: %w", err)
	}

	if err := s.workerRepo.ReplaceTeams(workerID, input.TeamIDs); err != nil {
		return nil, fmt.Errorf("failed to update team memberships: %w", err)
	}

	return worker, nil
}

// TeamIDs returns the worker's current team membership IDs, used to
// prefill the profile form.
func (s *WorkerService) TeamIDs(workerID uint64) ([]uint64, error) {
	return s.workerRepo.TeamIDs(workerID)
}
