package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/taskhub/task-system/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Position{},
		&models.TaskType{},
		&models.Worker{},
		&models.Team{},
		&models.TeamMember{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createWorker(t *testing.T, db *gorm.DB, username string, positionID uint64) *models.Worker {
	t.Helper()
	worker := &models.Worker{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashed",
		FirstName:    "Test",
		LastName:     "Worker",
		PositionID:   positionID,
	}
	require.NoError(t, db.Create(worker).Error)
	return worker
}

func createTask(t *testing.T, db *gorm.DB, name string, taskTypeID uint64, teamID *uint64, priority models.TaskPriority, complete bool) *models.Task {
	t.Helper()
	task := &models.Task{
		Name:        name,
		Description: "test",
		Deadline:    time.Now().Add(24 * time.Hour),
		IsComplete:  complete,
		Priority:    priority,
		TaskTypeID:  taskTypeID,
		TeamID:      teamID,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func TestCatalogRepository_DuplicateNamesRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCatalogRepository(db)

	require.NoError(t, repo.CreateTaskType(&models.TaskType{Name: "Development"}))
	err := repo.CreateTaskType(&models.TaskType{Name: "Development"})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, repo.CreatePosition(&models.Position{Name: "Engineer"}))
	err = repo.CreatePosition(&models.Position{Name: "Engineer"})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCatalogRepository_TaskTypesAlphabetical(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCatalogRepository(db)

	require.NoError(t, repo.CreateTaskType(&models.TaskType{Name: "B-type"}))
	require.NoError(t, repo.CreateTaskType(&models.TaskType{Name: "A-type"}))
	require.NoError(t, repo.CreateTaskType(&models.TaskType{Name: "C-type"}))

	taskTypes, err := repo.ListTaskTypes()
	require.NoError(t, err)
	require.Len(t, taskTypes, 3)
	require.Equal(t, "A-type", taskTypes[0].Name)
	require.Equal(t, "B-type", taskTypes[1].Name)
	require.Equal(t, "C-type", taskTypes[2].Name)
}

func TestCatalogRepository_DeleteTaskTypeCascadesToTasks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCatalogRepository(db)

	taskType := &models.TaskType{Name: "Backend"}
	require.NoError(t, repo.CreateTaskType(taskType))
	other := &models.TaskType{Name: "Frontend"}
	require.NoError(t, repo.CreateTaskType(other))

	doomed := createTask(t, db, "Doomed", taskType.ID, nil, models.PriorityLow, false)
	survivor := createTask(t, db, "Survivor", other.ID, nil, models.PriorityLow, false)

	position := &models.Position{Name: "Engineer"}
	require.NoError(t, repo.CreatePosition(position))
	worker := createWorker(t, db, "alice", position.ID)
	require.NoError(t, db.Create(&models.TaskAssignment{TaskID: doomed.ID, WorkerID: worker.ID}).Error)

	require.NoError(t, repo.DeleteTaskType(taskType.ID))

	var count int64
	db.Model(&models.Task{}).Where("id = ?", doomed.ID).Count(&count)
	require.Zero(t, count)

	db.Model(&models.TaskAssignment{}).Where("task_id = ?", doomed.ID).Count(&count)
	require.Zero(t, count)

	db.Model(&models.Task{}).Where("id = ?", survivor.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestCatalogRepository_DeletePositionCascadesToWorkers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCatalogRepository(db)

	position := &models.Position{Name: "Engineer"}
	require.NoError(t, repo.CreatePosition(position))
	other := &models.Position{Name: "Manager"}
	require.NoError(t, repo.CreatePosition(other))

	doomed := createWorker(t, db, "doomed", position.ID)
	survivor := createWorker(t, db, "survivor", other.ID)

	team := &models.Team{Name: "Core", Description: "core team"}
	require.NoError(t, db.Create(team).Error)
	require.NoError(t, db.Create(&models.TeamMember{TeamID: team.ID, WorkerID: doomed.ID}).Error)

	require.NoError(t, repo.DeletePosition(position.ID))

	var count int64
	db.Model(&models.Worker{}).Where("id = ?", doomed.ID).Count(&count)
	require.Zero(t, count)

	db.Model(&models.TeamMember{}).Where("worker_id = ?", doomed.ID).Count(&count)
	require.Zero(t, count)

	db.Model(&models.Worker{}).Where("id = ?", survivor.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestTeamRepository_DeleteDetachesTasksAndKeepsWorkers(t *testing.T) {
	db := setupTestDB(t)
	teamRepo := NewTeamRepository(db)
	catalogRepo := NewCatalogRepository(db)

	position := &models.Position{Name: "Engineer"}
	require.NoError(t, catalogRepo.CreatePosition(position))
	worker := createWorker(t, db, "bob", position.ID)

	team := &models.Team{Name: "QA Team", Description: "testing"}
	require.NoError(t, teamRepo.Create(team))
	require.NoError(t, teamRepo.ReplaceMembers(team.ID, []uint64{worker.ID}))

	taskType := &models.TaskType{Name: "Testing"}
	require.NoError(t, catalogRepo.CreateTaskType(taskType))
	task := createTask(t, db, "Regression run", taskType.ID, &team.ID, models.PriorityHigh, false)

	require.NoError(t, teamRepo.Delete(team.ID))

	// The task survives with a null team reference
	var reloaded models.Task
	require.NoError(t, db.First(&reloaded, task.ID).Error)
	require.Nil(t, reloaded.TeamID)

	// The member worker survives, the membership row does not
	var count int64
	db.Model(&models.Worker{}).Where("id = ?", worker.ID).Count(&count)
	require.EqualValues(t, 1, count)
	db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&count)
	require.Zero(t, count)
}

func TestWorkerRepository_ReplaceTeamsAppliesFullDiff(t *testing.T) {
	db := setupTestDB(t)
	workerRepo := NewWorkerRepository(db)
	catalogRepo := NewCatalogRepository(db)

	position := &models.Position{Name: "Engineer"}
	require.NoError(t, catalogRepo.CreatePosition(position))
	worker := createWorker(t, db, "carol", position.ID)

	teams := make([]*models.Team, 3)
	for i, name := range []string{"Alpha", "Beta", "Gamma"} {
		teams[i] = &models.Team{Name: name, Description: name}
		require.NoError(t, db.Create(teams[i]).Error)
	}

	// Start with Alpha and Beta
	require.NoError(t, workerRepo.ReplaceTeams(worker.ID, []uint64{teams[0].ID, teams[1].ID}))

	// Replace with Beta and Gamma: Alpha removed, Gamma added, Beta kept
	require.NoError(t, workerRepo.ReplaceTeams(worker.ID, []uint64{teams[1].ID, teams[2].ID}))

	teamIDs, err := workerRepo.TeamIDs(worker.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint64{teams[1].ID, teams[2].ID}, teamIDs)

	// Empty set clears all memberships
	require.NoError(t, workerRepo.ReplaceTeams(worker.ID, nil))
	teamIDs, err = workerRepo.TeamIDs(worker.ID)
	require.NoError(t, err)
	require.Empty(t, teamIDs)
}

func TestTaskRepository_ListOrderingAndSearch(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := NewTaskRepository(db)
	catalogRepo := NewCatalogRepository(db)

	taskType := &models.TaskType{Name: "Backend"}
	require.NoError(t, catalogRepo.CreateTaskType(taskType))

	createTask(t, db, "done urgent", taskType.ID, nil, models.PriorityUrgent, true)
	createTask(t, db, "open low", taskType.ID, nil, models.PriorityLow, false)
	createTask(t, db, "open urgent", taskType.ID, nil, models.PriorityUrgent, false)
	createTask(t, db, "open high", taskType.ID, nil, models.PriorityHigh, false)
	createTask(t, db, "done low", taskType.ID, nil, models.PriorityLow, true)

	tasks, total, err := taskRepo.List(TaskFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 5, total)

	names := make([]string, len(tasks))
	for i, task := range tasks {
		names[i] = task.Name
	}
	require.Equal(t, []string{"open urgent", "open high", "open low", "done urgent", "done low"}, names)

	// Case-insensitive substring search on the name
	tasks, total, err = taskRepo.List(TaskFilter{Search: "URGENT"})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	for _, task := range tasks {
		require.Contains(t, task.Name, "urgent")
	}

	_, total, err = taskRepo.List(TaskFilter{Search: "Nope"})
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestTaskRepository_ListPagination(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := NewTaskRepository(db)
	catalogRepo := NewCatalogRepository(db)

	taskType := &models.TaskType{Name: "Backend"}
	require.NoError(t, catalogRepo.CreateTaskType(taskType))

	for i := 0; i < 10; i++ {
		createTask(t, db, "task", taskType.ID, nil, models.PriorityLow, false)
	}

	tasks, total, err := taskRepo.List(TaskFilter{Page: 1, PageSize: 8})
	require.NoError(t, err)
	require.EqualValues(t, 10, total)
	require.Len(t, tasks, 8)

	tasks, _, err = taskRepo.List(TaskFilter{Page: 2, PageSize: 8})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
}

func TestTaskRepository_DeleteRemovesAssignments(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := NewTaskRepository(db)
	catalogRepo := NewCatalogRepository(db)

	taskType := &models.TaskType{Name: "Backend"}
	require.NoError(t, catalogRepo.CreateTaskType(taskType))
	position := &models.Position{Name: "Engineer"}
	require.NoError(t, catalogRepo.CreatePosition(position))
	worker := createWorker(t, db, "dave", position.ID)

	task := createTask(t, db, "short lived", taskType.ID, nil, models.PriorityLow, false)
	require.NoError(t, taskRepo.ReplaceAssignees(task.ID, []uint64{worker.ID}))

	require.NoError(t, taskRepo.Delete(task.ID))

	var count int64
	db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	require.Zero(t, count)
	db.Model(&models.TaskAssignment{}).Where("task_id = ?", task.ID).Count(&count)
	require.Zero(t, count)
}

func TestDiffIDs(t *testing.T) {
	toRemove, toAdd := diffIDs([]uint64{1, 2, 3}, []uint64{2, 3, 4})
	require.Equal(t, []uint64{1}, toRemove)
	require.Equal(t, []uint64{4}, toAdd)

	toRemove, toAdd = diffIDs(nil, []uint64{1, 1, 2})
	require.Empty(t, toRemove)
	require.Equal(t, []uint64{1, 2}, toAdd)

	toRemove, toAdd = diffIDs([]uint64{5}, nil)
	require.Equal(t, []uint64{5}, toRemove)
	require.Empty(t, toAdd)
}
