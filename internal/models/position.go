package models

import "time"

type Position struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Workers []Worker `gorm:"foreignKey:PositionID" json:"workers,omitempty"`
}

func (p Position) String() string {
	return p.Name
}
