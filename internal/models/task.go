package models

import "time"

type TaskPriority string

const (
	PriorityUrgent TaskPriority = "urgent"
	PriorityHigh   TaskPriority = "high"
	PriorityLow    TaskPriority = "low"
)

// Rank maps priorities onto a total order for sorting. The string values
// do not sort correctly lexically, so listings order by this rank.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 2
	case PriorityHigh:
		return 1
	default:
		return 0
	}
}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityLow:
		return true
	}
	return false
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Deadline    time.Time    `gorm:"not null" json:"deadline"`
	IsComplete  bool         `gorm:"not null;default:false" json:"is_complete"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'low'" json:"priority"`
	TaskTypeID  uint64       `gorm:"not null" json:"task_type_id"`
	TeamID      *uint64      `json:"team_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	TaskType    TaskType         `gorm:"foreignKey:TaskTypeID" json:"task_type,omitempty"`
	Team        *Team            `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}

// PriorityBadgeClass returns the CSS badge class for the task's priority.
// Unknown values fall back to the low-priority badge.
func (t Task) PriorityBadgeClass() string {
	switch t.Priority {
	case PriorityUrgent:
		return "priority-urgent"
	case PriorityHigh:
		return "priority-high"
	default:
		return "priority-low"
	}
}
