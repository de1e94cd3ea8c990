package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskhub/task-system/internal/models"
)

func TestWorkerService_UpdateProfileReplacesTeamSet(t *testing.T) {
	env := setupServiceTestEnv(t)
	position := env.createPosition(t, "Engineer")

	worker, err := env.authService.Register(RegisterInput{
		Username:   "alice",
		Email:      "alice@example.com",
		FirstName:  "Alice",
		LastName:   "Cooper",
		PositionID: position.ID,
		Password1:  "supersecret",
		Password2:  "supersecret",
	})
	require.NoError(t, err)

	teams := make([]*models.Team, 3)
	for i, name := range []string{"Alpha", "Beta", "Gamma"} {
		team, err := env.teamService.CreateTeam(TeamInput{Name: name, Description: name})
		require.NoError(t, err)
		teams[i] = team
	}

	_, err = env.workerService.UpdateProfile(worker.ID, ProfileInput{
		FirstName:  "Alice",
		LastName:   "Cooper",
		Username:   "alice",
		Email:      "alice@example.com",
		PositionID: position.ID,
		TeamIDs:    []uint64{teams[0].ID, teams[1].ID},
	})
	require.NoError(t, err)

	teamIDs, err := env.workerService.TeamIDs(worker.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint64{teams[0].ID, teams[1].ID}, teamIDs)

	// Submitting a different set removes Alpha, keeps Beta, adds Gamma
	_, err = env.workerService.UpdateProfile(worker.ID, ProfileInput{
		FirstName:  "Alice",
		LastName:   "Cooper",
		Username:   "alice",
		Email:      "alice@example.com",
		PositionID: position.ID,
		TeamIDs:    []uint64{teams[1].ID, teams[2].ID},
	})
	require.NoError(t, err)

	teamIDs, err = env.workerService.TeamIDs(worker.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint64{teams[1].ID, teams[2].ID}, teamIDs)
}

func TestWorkerService_UpdateProfileScalarFields(t *testing.T) {
	env := setupServiceTestEnv(t)
	engineer := env.createPosition(t, "Engineer")
	manager := env.createPosition(t, "Manager")

	worker, err := env.authService.Register(RegisterInput{
		Username:   "bob",
		Email:      "bob@example.com",
		PositionID: engineer.ID,
		Password1:  "supersecret",
		Password2:  "supersecret",
	})
	require.NoError(t, err)

	updated, err := env.workerService.UpdateProfile(worker.ID, ProfileInput{
		FirstName:  "Robert",
		LastName:   "Builder",
		Username:   "robert",
		Email:      "robert@example.com",
		PositionID: manager.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "Robert", updated.FirstName)
	require.Equal(t, "robert", updated.Username)
	require.Equal(t, manager.ID, updated.PositionID)
}

func TestWorkerService_UpdateProfileRejectsTakenIdentity(t *testing.T) {
	env := setupServiceTestEnv(t)
	position := env.createPosition(t, "Engineer")

	_, err := env.authService.Register(RegisterInput{
		Username:   "taken",
		Email:      "taken@example.com",
		PositionID: position.ID,
		Password1:  "supersecret",
		Password2:  "supersecret",
	})
	require.NoError(t, err)

	worker, err := env.authService.Register(RegisterInput{
		Username:   "carol",
		Email:      "carol@example.com",
		PositionID: position.ID,
		Password1:  "supersecret",
		Password2:  "supersecret",
	})
	require.NoError(t, err)

	_, err = env.workerService.UpdateProfile(worker.ID, ProfileInput{
		Username:   "taken",
		Email:      "carol@example.com",
		PositionID: position.ID,
	})
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = env.workerService.UpdateProfile(worker.ID, ProfileInput{
		Username:   "carol",
		Email:      "taken@example.com",
		PositionID: position.ID,
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	// Keeping your own identity is not a conflict
	_, err = env.workerService.UpdateProfile(worker.ID, ProfileInput{
		Username:   "carol",
		Email:      "carol@example.com",
		PositionID: position.ID,
	})
	require.NoError(t, err)
}

func TestWorkerService_UpdateProfileRejectsUnknownTeam(t *testing.T) {
	env := setupServiceTestEnv(t)
	position := env.createPosition(t, "Engineer")

	worker, err := env.authService.Register(RegisterInput{
		Username:   "dora",
		Email:      "dora@example.com",
		PositionID: position.ID,
		Password1:  "supersecret",
		Password2:  "supersecret",
	})
	require.NoError(t, err)

	_, err = env.workerService.UpdateProfile(worker.ID, ProfileInput{
		Username:   "dora",
		Email:      "dora@example.com",
		PositionID: position.ID,
		TeamIDs:    []uint64{999},
	})
	require.ErrorIs(t, err, ErrInvalidTeam)
}
