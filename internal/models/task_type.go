package models

import "time"

type TaskType struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:TaskTypeID" json:"tasks,omitempty"`
}

func (t TaskType) String() string {
	return t.Name
}
