package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/taskhub/task-system/internal/database"
	"github.com/taskhub/task-system/internal/models"
)

// GormWorkerRepository is a GORM implementation of WorkerRepository
type GormWorkerRepository struct {
	db *gorm.DB
}

// NewWorkerRepository creates a new WorkerRepository
func NewWorkerRepository(db *gorm.DB) WorkerRepository {
	return &GormWorkerRepository{db: db}
}

// Create creates a new worker
func (r *GormWorkerRepository) Create(worker *models.Worker) error {
	return r.db.Create(worker).Error
}

// FindByID finds a worker by ID with optional preloading
func (r *GormWorkerRepository) FindByID(id uint64, preload ...string) (*models.Worker, error) {
	var worker models.Worker
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&worker, id).Error; err != nil {
		return nil, err
	}

	return &worker, nil
}

// FindByUsername finds a worker by username
func (r *GormWorkerRepository) FindByUsername(username string) (*models.Worker, error) {
	var worker models.Worker
	if err := r.db.Where("username = ?", username).First(&worker).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

// FindByEmail finds a worker by email
func (r *GormWorkerRepository) FindByEmail(email string) (*models.Worker, error) {
	var worker models.Worker
	if err := r.db.Where("email = ?", email).First(&worker).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

// List retrieves workers with pagination
func (r *GormWorkerRepository) List(page, pageSize int) ([]models.Worker, int64, error) {
	var workers []models.Worker

	var total int64
	if err := r.db.Model(&models.Worker{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Preload("Position").Order("workers.id ASC").
		Scopes(database.Paginate(page, pageSize))

	if err := query.Find(&workers).Error; err != nil {
		return nil, 0, err
	}

	return workers, total, nil
}

// Update updates a worker's scalar fields
func (r *GormWorkerRepository) Update(worker *models.Worker) error {
	return r.db.Save(worker).Error
}

// TeamIDs returns the IDs of the teams the worker belongs to
func (r *GormWorkerRepository) TeamIDs(workerID uint64) ([]uint64, error) {
	var teamIDs []uint64
	err := r.db.Model(&models.TeamMember{}).
		Where("worker_id = ?", workerID).
		Pluck("team_id", &teamIDs).Error
	return teamIDs, err
}

// ReplaceTeams replaces the worker's team memberships atomically. The
// diff and both writes run inside one transaction so concurrent readers
// never observe a half-applied membership change.
func (r *GormWorkerRepository) ReplaceTeams(workerID uint64, teamIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current []uint64
		if err := tx.Model(&models.TeamMember{}).
			Where("worker_id = ?", workerID).
			Pluck("team_id", &current).Error; err != nil {
			return err
		}

		toRemove, toAdd := diffIDs(current, teamIDs)

		if len(toRemove) > 0 {
			if err := tx.Where("worker_id = ? AND team_id IN ?", workerID, toRemove).
				Delete(&models.TeamMember{}).Error; err != nil {
				return err
			}
		}

		if len(toAdd) > 0 {
			members := make([]models.TeamMember, len(toAdd))
			for i, teamID := range toAdd {
				members[i] = models.TeamMember{
					TeamID:   teamID,
					WorkerID: workerID,
					JoinedAt: time.Now(),
				}
			}
			if err := tx.Create(&members).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// CountByIDs counts how many of the given worker IDs exist
func (r *GormWorkerRepository) CountByIDs(workerIDs []uint64) (int64, error) {
	if len(workerIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Worker{}).Where("id IN ?", workerIDs).Count(&count).Error
	return count, err
}

// Count returns the total number of workers
func (r *GormWorkerRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Worker{}).Count(&count).Error
	return count, err
}
