package models

import "time"

type TeamMember struct {
	TeamID   uint64    `gorm:"primarykey" json:"team_id"`
	WorkerID uint64    `gorm:"primarykey" json:"worker_id"`
	JoinedAt time.Time `json:"joined_at"`

	// Relations
	Team   Team   `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Worker Worker `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
}
