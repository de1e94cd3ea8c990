package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/taskhub/task-system/internal/database"
	"github.com/taskhub/task-system/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// taskListOrder sorts incomplete tasks first, then by priority rank.
// The priority strings do not sort correctly lexically ("low" would land
// between "high" and "urgent"), so the rank is made explicit.
const taskListOrder = "tasks.is_complete ASC, CASE tasks.priority WHEN 'urgent' THEN 2 WHEN 'high' THEN 1 ELSE 0 END DESC"

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering, ordering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(tasks.name) LIKE ?", pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order(taskListOrder).
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("TaskType").Preload("Team").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task and its assignment rows
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// ReplaceAssignees replaces the task's assignee set atomically
func (r *GormTaskRepository) ReplaceAssignees(taskID uint64, workerIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return replaceAssignees(tx, taskID, workerIDs)
	})
}

// replaceAssignees diffs the current assignee rows against the submitted
// set and applies removals and additions inside the caller's transaction.
func replaceAssignees(tx *gorm.DB, taskID uint64, workerIDs []uint64) error {
	var current []uint64
	if err := tx.Model(&models.TaskAssignment{}).
		Where("task_id = ?", taskID).
		Pluck("worker_id", &current).Error; err != nil {
		return err
	}

	toRemove, toAdd := diffIDs(current, workerIDs)

	if len(toRemove) > 0 {
		if err := tx.Where("task_id = ? AND worker_id IN ?", taskID, toRemove).
			Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
	}

	if len(toAdd) > 0 {
		assignments := make([]models.TaskAssignment, len(toAdd))
		for i, workerID := range toAdd {
			assignments[i] = models.TaskAssignment{
				TaskID:   taskID,
				WorkerID: workerID,
			}
		}
		if err := tx.Create(&assignments).Error; err != nil {
			return err
		}
	}

	return nil
}

// Count returns the total number of tasks
func (r *GormTaskRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Count(&count).Error
	return count, err
}

// CountCompleted returns the number of completed tasks
func (r *GormTaskRepository) CountCompleted() (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Where("is_complete = ?", true).Count(&count).Error
	return count, err
}

// diffIDs splits current and desired ID sets into removals and additions.
func diffIDs(current, desired []uint64) (toRemove, toAdd []uint64) {
	currentSet := make(map[uint64]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}

	desiredSet := make(map[uint64]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	for _, id := range current {
		if _, ok := desiredSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}

	for _, id := range desired {
		if _, ok := currentSet[id]; !ok {
			toAdd = append(toAdd, id)
			currentSet[id] = struct{}{}
		}
	}

	return toRemove, toAdd
}
