package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/taskhub/task-system/internal/config"
	"github.com/taskhub/task-system/internal/constants"
	"github.com/taskhub/task-system/internal/database"
	"github.com/taskhub/task-system/internal/handlers"
	"github.com/taskhub/task-system/internal/logging"
	"github.com/taskhub/task-system/internal/middleware"
	"github.com/taskhub/task-system/internal/repository"
	"github.com/taskhub/task-system/internal/services"
)

func main() {
	cfg := config.Load()
	log := logging.Init(cfg.GinMode)

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("database connection established")

	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatal().Err(err).Msg("failed to add indexes")
	}
	log.Info().Msg("database migrations completed")

	// Repositories
	db := database.GetDB()
	workerRepo := repository.NewWorkerRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// Services
	authService := services.NewAuthService(workerRepo, catalogRepo)
	taskService := services.NewTaskService(taskRepo, teamRepo, workerRepo, catalogRepo)
	teamService := services.NewTeamService(teamRepo, workerRepo)
	workerService := services.NewWorkerService(workerRepo, teamRepo, catalogRepo)
	dashboardService := services.NewDashboardService(workerRepo, taskRepo, catalogRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, dashboardService)
	taskHandler := handlers.NewTaskHandler(taskService, teamService, workerService, dashboardService)
	teamHandler := handlers.NewTeamHandler(teamService, workerService)
	workerHandler := handlers.NewWorkerHandler(workerService, authService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.Default())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Public routes
	r.GET("/register/", authHandler.RegisterForm)
	r.POST("/register/", authHandler.Register)
	r.GET(constants.LoginPath, authHandler.LoginForm)
	r.POST(constants.LoginPath, authHandler.Login)

	// Authenticated routes
	auth := r.Group("/", middleware.RequireAuth())
	{
		auth.GET("/", dashboardHandler.Index)
		auth.GET("/accounts/logout/", authHandler.Logout)
		auth.GET("/accounts/me/", authHandler.GetCurrentWorker)

		// Tasks
		auth.GET("/list/", taskHandler.ListTasks)
		auth.GET("/task_detail/:id/", taskHandler.GetTask)
		auth.GET("/task_create/create/", taskHandler.TaskForm)
		auth.POST("/task_create/create/", taskHandler.CreateTask)
		auth.GET("/task_update/:id/update/", taskHandler.GetTask)
		auth.POST("/task_update/:id/update/", taskHandler.UpdateTask)
		auth.GET("/task_delete/:id/delete/", taskHandler.GetTask)
		auth.POST("/task_delete/:id/delete/", taskHandler.DeleteTask)
		auth.GET("/task/:id/done/", taskHandler.MarkTaskDone)

		// Teams
		auth.GET("/teams/", teamHandler.ListTeams)
		auth.GET("/team/create/", teamHandler.TeamForm)
		auth.POST("/team/create/", teamHandler.CreateTeam)
		auth.GET("/team/:id/", teamHandler.GetTeam)
		auth.GET("/teams/:id/update/", teamHandler.GetTeam)
		auth.POST("/teams/:id/update/", teamHandler.UpdateTeam)
		auth.GET("/teams/:id/delete/", teamHandler.GetTeam)
		auth.POST("/teams/:id/delete/", teamHandler.DeleteTeam)

		// Workers
		auth.GET("/workers/", workerHandler.ListWorkers)
		auth.GET("/workers/update/", workerHandler.ProfileForm)
		auth.POST("/workers/update/", workerHandler.UpdateProfile)
	}

	log.Info().Str("addr", cfg.ServerAddr).Msg("server starting")
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
