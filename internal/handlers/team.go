package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/task-system/internal/dto"
	apierrors "github.com/taskhub/task-system/internal/errors"
	"github.com/taskhub/task-system/internal/services"
)

// TeamHandler coordinates the team CRUD handlers.
type TeamHandler struct {
	teamService   *services.TeamService
	workerService *services.WorkerService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService, workerService *services.WorkerService) *TeamHandler {
	return &TeamHandler{
		teamService:   teamService,
		workerService: workerService,
	}
}

// TeamForm serves the data the team form needs (the worker vocabulary
// for the member checkboxes).
func (h *TeamHandler) TeamForm(c *gin.Context) {
	workers, _, err := h.workerService.ListWorkers(0, 0)
	if err != nil {
		apierrors.InternalError(c, "Failed to load workers")
		return
	}

	workerDTOs := make([]dto.WorkerDTO, len(workers))
	for i, worker := range workers {
		workerDTOs[i] = dto.ToWorkerDTO(worker)
	}

	c.JSON(http.StatusOK, gin.H{"workers": workerDTOs})
}

// TeamRequest is the full team form.
type TeamRequest struct {
	Name        string   `form:"name" json:"name" binding:"required"`
	Description string   `form:"description" json:"description"`
	Workers     []uint64 `form:"workers" json:"workers"`
}

// ListTeams returns all teams.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch teams")
		return
	}

	teamDTOs := make([]dto.TeamDTO, len(teams))
	for i, team := range teams {
		teamDTOs[i] = dto.ToTeamDTO(team)
	}

	c.JSON(http.StatusOK, gin.H{"teams": teamDTOs})
}

// GetTeam returns a team with its members and tasks.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(teamID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

// CreateTeam creates a team from the submitted form and redirects to its
// detail view.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req TeamRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(services.TeamInput{
		Name:        req.Name,
		Description: req.Description,
		WorkerIDs:   req.Workers,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.Redirect(http.StatusFound, teamDetailPath(team.ID))
}

// UpdateTeam applies the submitted form to the team and redirects to its
// detail view.
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req TeamRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.UpdateTeam(teamID, services.TeamInput{
		Name:        req.Name,
		Description: req.Description,
		WorkerIDs:   req.Workers,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.Redirect(http.StatusFound, teamDetailPath(team.ID))
}

// DeleteTeam removes the team and redirects to the list view. Member
// workers survive; referencing tasks are detached, not deleted.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(teamID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/teams/")
}

func teamDetailPath(id uint64) string {
	return fmt.Sprintf("/team/%d/", id)
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTeamNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrTeamNameRequired),
		errors.Is(err, services.ErrInvalidMember):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
