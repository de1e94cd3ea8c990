package repository

import (
	"gorm.io/gorm"

	"github.com/taskhub/task-system/internal/models"
)

// GormCatalogRepository is a GORM implementation of CatalogRepository
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

// CreateTaskType creates a task type
func (r *GormCatalogRepository) CreateTaskType(taskType *models.TaskType) error {
	return r.db.Create(taskType).Error
}

// FindTaskType finds a task type by ID
func (r *GormCatalogRepository) FindTaskType(id uint64) (*models.TaskType, error) {
	var taskType models.TaskType
	if err := r.db.First(&taskType, id).Error; err != nil {
		return nil, err
	}
	return &taskType, nil
}

// ListTaskTypes returns all task types. Task types are always listed
// alphabetically.
func (r *GormCatalogRepository) ListTaskTypes() ([]models.TaskType, error) {
	var taskTypes []models.TaskType
	if err := r.db.Order("task_types.name ASC").Find(&taskTypes).Error; err != nil {
		return nil, err
	}
	return taskTypes, nil
}

// DeleteTaskType removes a task type and cascades to its tasks,
// including their assignment rows.
func (r *GormCatalogRepository) DeleteTaskType(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint64
		if err := tx.Model(&models.Task{}).
			Where("task_type_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).
				Delete(&models.TaskAssignment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", taskIDs).
				Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.TaskType{}, id).Error
	})
}

// CountTaskTypes returns the total number of task types
func (r *GormCatalogRepository) CountTaskTypes() (int64, error) {
	var count int64
	err := r.db.Model(&models.TaskType{}).Count(&count).Error
	return count, err
}

// CreatePosition creates a position
func (r *GormCatalogRepository) CreatePosition(position *models.Position) error {
	return r.db.Create(position).Error
}

// FindPosition finds a position by ID
func (r *GormCatalogRepository) FindPosition(id uint64) (*models.Position, error) {
	var position models.Position
	if err := r.db.First(&position, id).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

// ListPositions returns all positions
func (r *GormCatalogRepository) ListPositions() ([]models.Position, error) {
	var positions []models.Position
	if err := r.db.Order("positions.name ASC").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

// DeletePosition removes a position and cascades to the workers holding
// it, along with their membership and assignment rows.
func (r *GormCatalogRepository) DeletePosition(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var workerIDs []uint64
		if err := tx.Model(&models.Worker{}).
			Where("position_id = ?", id).
			Pluck("id", &workerIDs).Error; err != nil {
			return err
		}

		if len(workerIDs) > 0 {
			if err := tx.Where("worker_id IN ?", workerIDs).
				Delete(&models.TeamMember{}).Error; err != nil {
				return err
			}
			if err := tx.Where("worker_id IN ?", workerIDs).
				Delete(&models.TaskAssignment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", workerIDs).
				Delete(&models.Worker{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Position{}, id).Error
	})
}

// CountPositions returns the total number of positions
func (r *GormCatalogRepository) CountPositions() (int64, error) {
	var count int64
	err := r.db.Model(&models.Position{}).Count(&count).Error
	return count, err
}
