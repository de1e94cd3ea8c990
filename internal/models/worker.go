package models

import (
	"fmt"
	"time"
)

type Worker struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(255)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(255)" json:"last_name"`
	PositionID   uint64    `gorm:"not null" json:"position_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Position    Position         `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	Memberships []TeamMember     `gorm:"foreignKey:WorkerID" json:"-"`
	Assignments []TaskAssignment `gorm:"foreignKey:WorkerID" json:"-"`
}

// String renders the worker the way list and detail views display it.
// The Position relation must be loaded for the position name to appear.
func (w Worker) String() string {
	return fmt.Sprintf("%s - %s > Position: %s", w.FirstName, w.LastName, w.Position.Name)
}
