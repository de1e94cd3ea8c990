package repository

import (
	"gorm.io/gorm"

	"github.com/taskhub/task-system/internal/models"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// Create creates a new team
func (r *GormTeamRepository) Create(team *models.Team) error {
	return r.db.Create(team).Error
}

// FindByID finds a team by ID with optional preloading
func (r *GormTeamRepository) FindByID(id uint64, preload ...string) (*models.Team, error) {
	var team models.Team
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&team, id).Error; err != nil {
		return nil, err
	}

	return &team, nil
}

// List returns all teams
func (r *GormTeamRepository) List() ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Order("teams.name ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// Update updates a team
func (r *GormTeamRepository) Update(team *models.Team) error {
	return r.db.Save(team).Error
}

// Delete removes a team, its membership rows, and detaches its tasks.
// Member workers are left intact; referencing tasks keep existing with a
// null team.
func (r *GormTeamRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).
			Where("team_id = ?", id).
			Update("team_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Team{}, id).Error
	})
}

// ReplaceMembers replaces the team's member set atomically
func (r *GormTeamRepository) ReplaceMembers(teamID uint64, workerIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current []uint64
		if err := tx.Model(&models.TeamMember{}).
			Where("team_id = ?", teamID).
			Pluck("worker_id", &current).Error; err != nil {
			return err
		}

		toRemove, toAdd := diffIDs(current, workerIDs)

		if len(toRemove) > 0 {
			if err := tx.Where("team_id = ? AND worker_id IN ?", teamID, toRemove).
				Delete(&models.TeamMember{}).Error; err != nil {
				return err
			}
		}

		if len(toAdd) > 0 {
			members := make([]models.TeamMember, len(toAdd))
			for i, workerID := range toAdd {
				members[i] = models.TeamMember{
					TeamID:   teamID,
					WorkerID: workerID,
				}
			}
			if err := tx.Create(&members).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
