package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds indexes for the common list filters and joins.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for filtering and sorting
		{"tasks", "idx_tasks_task_type_id", "task_type_id"},
		{"tasks", "idx_tasks_team_id", "team_id"},
		{"tasks", "idx_tasks_is_complete", "is_complete"},
		{"tasks", "idx_tasks_deadline", "deadline"},

		// Worker indexes
		{"workers", "idx_workers_position_id", "position_id"},

		// Join table indexes
		{"team_members", "idx_team_members_team_id", "team_id"},
		{"team_members", "idx_team_members_worker_id", "worker_id"},
		{"task_assignments", "idx_task_assignments_task_id", "task_id"},
		{"task_assignments", "idx_task_assignments_worker_id", "worker_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
