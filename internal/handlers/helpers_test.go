package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/taskhub/task-system/internal/constants"
	"github.com/taskhub/task-system/internal/middleware"
	"github.com/taskhub/task-system/internal/models"
	"github.com/taskhub/task-system/internal/repository"
	"github.com/taskhub/task-system/internal/services"
)

type handlerTestEnv struct {
	db            *gorm.DB
	router        *gin.Engine
	authService   *services.AuthService
	taskService   *services.TaskService
	teamService   *services.TeamService
	workerService *services.WorkerService
	catalogRepo   repository.CatalogRepository
}

// setupHandlerTestEnv builds an in-memory database and a router wired
// the same way as cmd/server.
func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

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

	workerRepo := repository.NewWorkerRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	authService := services.NewAuthService(workerRepo, catalogRepo)
	taskService := services.NewTaskService(taskRepo, teamRepo, workerRepo, catalogRepo)
	teamService := services.NewTeamService(teamRepo, workerRepo)
	workerService := services.NewWorkerService(workerRepo, teamRepo, catalogRepo)
	dashboardService := services.NewDashboardService(workerRepo, taskRepo, catalogRepo)

	authHandler := NewAuthHandler(authService, dashboardService)
	taskHandler := NewTaskHandler(taskService, teamService, workerService, dashboardService)
	teamHandler := NewTeamHandler(teamService, workerService)
	workerHandler := NewWorkerHandler(workerService, authService)
	dashboardHandler := NewDashboardHandler(dashboardService)

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	r.GET("/register/", authHandler.RegisterForm)
	r.POST("/register/", authHandler.Register)
	r.GET(constants.LoginPath, authHandler.LoginForm)
	r.POST(constants.LoginPath, authHandler.Login)

	auth := r.Group("/", middleware.RequireAuth())
	{
		auth.GET("/", dashboardHandler.Index)
		auth.GET("/accounts/logout/", authHandler.Logout)
		auth.GET("/accounts/me/", authHandler.GetCurrentWorker)

		auth.GET("/list/", taskHandler.ListTasks)
		auth.GET("/task_detail/:id/", taskHandler.GetTask)
		auth.GET("/task_create/create/", taskHandler.TaskForm)
		auth.POST("/task_create/create/", taskHandler.CreateTask)
		auth.GET("/task_update/:id/update/", taskHandler.GetTask)
		auth.POST("/task_update/:id/update/", taskHandler.UpdateTask)
		auth.GET("/task_delete/:id/delete/", taskHandler.GetTask)
		auth.POST("/task_delete/:id/delete/", taskHandler.DeleteTask)
		auth.GET("/task/:id/done/", taskHandler.MarkTaskDone)

		auth.GET("/teams/", teamHandler.ListTeams)
		auth.GET("/team/create/", teamHandler.TeamForm)
		auth.POST("/team/create/", teamHandler.CreateTeam)
		auth.GET("/team/:id/", teamHandler.GetTeam)
		auth.GET("/teams/:id/update/", teamHandler.GetTeam)
		auth.POST("/teams/:id/update/", teamHandler.UpdateTeam)
		auth.GET("/teams/:id/delete/", teamHandler.GetTeam)
		auth.POST("/teams/:id/delete/", teamHandler.DeleteTeam)

		auth.GET("/workers/", workerHandler.ListWorkers)
		auth.GET("/workers/update/", workerHandler.ProfileForm)
		auth.POST("/workers/update/", workerHandler.UpdateProfile)
	}

	return handlerTestEnv{
		db:            db,
		router:        r,
		authService:   authService,
		taskService:   taskService,
		teamService:   teamService,
		workerService: workerService,
		catalogRepo:   catalogRepo,
	}
}

func (env handlerTestEnv) createPosition(t *testing.T, name string) *models.Position {
	t.Helper()
	position := &models.Position{Name: name}
	require.NoError(t, env.catalogRepo.CreatePosition(position))
	return position
}

func (env handlerTestEnv) createTaskType(t *testing.T, name string) *models.TaskType {
	t.Helper()
	taskType := &models.TaskType{Name: name}
	require.NoError(t, env.catalogRepo.CreateTaskType(taskType))
	return taskType
}

func (env handlerTestEnv) registerWorker(t *testing.T, username string, positionID uint64) *models.Worker {
	t.Helper()
	worker, err := env.authService.Register(services.RegisterInput{
		Username:   username,
		Email:      username + "@example.com",
		FirstName:  "Test",
		LastName:   "Worker",
		PositionID: positionID,
		Password1:  "supersecret",
		Password2:  "supersecret",
	})
	require.NoError(t, err)
	return worker
}

// login performs a credential login and returns the session cookies for
// subsequent requests.
func (env handlerTestEnv) login(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, constants.LoginPath, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

// do performs a request with the given session cookies and optional
// JSON body.
func (env handlerTestEnv) do(t *testing.T, method, url string, payload any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
