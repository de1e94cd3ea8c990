package dto

import (
	"github.com/taskhub/task-system/internal/models"
	"github.com/taskhub/task-system/internal/utils"
)

// TeamDTO represents a team in responses
type TeamDTO struct {
	ID          uint64      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Workers     []WorkerDTO `json:"workers,omitempty"`
	Tasks       []TaskDTO   `json:"tasks,omitempty"`
}

// WorkerListResponse represents a paginated worker listing
type WorkerListResponse struct {
	Workers    []WorkerDTO              `json:"workers"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	dto := TeamDTO{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
	}

	// Include members if preloaded
	if len(team.Members) > 0 {
		dto.Workers = make([]WorkerDTO, len(team.Members))
		for i, member := range team.Members {
			dto.Workers[i] = ToWorkerDTO(member.Worker)
		}
	}

	// Include tasks if preloaded
	if len(team.Tasks) > 0 {
		dto.Tasks = make([]TaskDTO, len(team.Tasks))
		for i, task := range team.Tasks {
			dto.Tasks[i] = ToTaskDTO(task)
		}
	}

	return dto
}

// ToWorkerListResponse converts workers to a paginated listing response
func ToWorkerListResponse(workers []models.Worker, params utils.PaginationParams, total int64) WorkerListResponse {
	items := make([]WorkerDTO, len(workers))
	for i, worker := range workers {
		items[i] = ToWorkerDTO(worker)
	}

	return WorkerListResponse{
		Workers:    items,
		Pagination: utils.ToPaginationResponse(params, total),
	}
}
