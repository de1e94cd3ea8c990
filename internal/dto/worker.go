package dto

import (
	"github.com/taskhub/task-system/internal/models"
)

// WorkerDTO represents a worker in responses
type WorkerDTO struct {
	ID        uint64       `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Position  *PositionDTO `json:"position,omitempty"`
	Display   string       `json:"display,omitempty"`
}

// PositionDTO represents a position in responses
type PositionDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ToWorkerDTO converts a Worker model to WorkerDTO
func ToWorkerDTO(worker models.Worker) WorkerDTO {
	dto := WorkerDTO{
		ID:        worker.ID,
		Username:  worker.Username,
		Email:     worker.Email,
		FirstName: worker.FirstName,
		LastName:  worker.LastName,
	}

	// Include position if preloaded
	if worker.Position.ID != 0 {
		position := ToPositionDTO(worker.Position)
		dto.Position = &position
		dto.Display = worker.String()
	}

	return dto
}

// ToPositionDTO converts a Position model to PositionDTO
func ToPositionDTO(position models.Position) PositionDTO {
	return PositionDTO{
		ID:   position.ID,
		Name: position.Name,
	}
}
