package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskhub/task-system/internal/models"
	"github.com/taskhub/task-system/internal/repository"
)

var (
	ErrTeamNameRequired = errors.New("name is required")
	ErrTeamNameTaken    = errors.New("team name already exists")
	ErrInvalidMember    = errors.New("one or more workers do not exist")
)

// TeamService handles team business logic
type TeamService struct {
	teamRepo   repository.TeamRepository
	workerRepo repository.WorkerRepository
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo repository.TeamRepository, workerRepo repository.WorkerRepository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		workerRepo: workerRepo,
	}
}

// TeamInput carries the full team form.
type TeamInput struct {
	Name        string
	Description string
	WorkerIDs   []uint64
}

// ListTeams returns all teams.
func (s *TeamService) ListTeams() ([]models.Team, error) {
	teams, err := s.teamRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// GetTeam returns a team with its members and tasks loaded.
func (s *TeamService) GetTeam(teamID uint64) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(teamID, "Members", "Members.Worker", "Members.Worker.Position", "Tasks")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	return team, nil
}

// CreateTeam validates the form input and creates the team with its
// member set.
func (s *TeamService) CreateTeam(input TeamInput) (*models.Team, error) {
	if err := s.validateTeamInput(input); err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:        input.Name,
		Description: input.Description,
	}

	if err := s.teamRepo.Create(team); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTeamNameTaken
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	if len(input.WorkerIDs) > 0 {
		if err := s.teamRepo.ReplaceMembers(team.ID, input.WorkerIDs); err != nil {
			return nil, fmt.Errorf("failed to set members: %w", err)
		}
	}

	return team, nil
}

// UpdateTeam applies the full form to an existing team and replaces its
// member set with the submitted one.
func (s *TeamService) UpdateTeam(teamID uint64, input TeamInput) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if err := s.validateTeamInput(input); err != nil {
		return nil, err
	}

	team.Name = input.Name
	team.Description = input.Description

	if err := s.teamRepo.Update(team); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTeamNameTaken
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	if err := s.teamRepo.ReplaceMembers(team.ID, input.WorkerIDs); err != nil {
		return nil, fmt.Errorf("failed to update members: %w", err)
	}

	return team, nil
}

// DeleteTeam removes a team. Member workers survive, and tasks that
// referenced the team keep existing with a null team.
func (s *TeamService) DeleteTeam(teamID uint64) error {
	if _, err := s.teamRepo.FindByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to find team: %w", err)
	}

	if err := s.teamRepo.Delete(teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return nil
}

func (s *TeamService) validateTeamInput(input TeamInput) error {
	if input.Name == "" {
		return ErrTeamNameRequired
	}

	if len(input.WorkerIDs) > 0 {
		count, err := s.workerRepo.CountByIDs(input.WorkerIDs)
		if err != nil {
			return fmt.Errorf("failed to check workers: %w", err)
		}
		if int(count) != len(uniqueIDs(input.WorkerIDs)) {
			return ErrInvalidMember
		}
	}

	return nil
}
