package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/collabhub/backend/internal/config"
	"github.com/collabhub/backend/internal/database"
	"github.com/collabhub/backend/internal/handlers"
	"github.com/collabhub/backend/internal/middleware"
	"github.com/collabhub/backend/internal/repository"
	"github.com/collabhub/backend/internal/services"
	"github.com/collabhub/backend/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger, err := newLogger(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.SecretKey == "" {
		logger.Fatal("SECRET_KEY must be set")
	}

	// Connect to database
	if err := database.Connect(cfg, logger); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.AddIndexes(database.GetDB(), logger); err != nil {
		logger.Fatal("Failed to add indexes", zap.Error(err))
	}

	// Initialize services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := token.NewService(cfg.SecretKey)
	membershipService := services.NewMembershipService(projectRepo)
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, membershipService)
	taskService := services.NewTaskService(taskRepo, userRepo, membershipService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, tokens)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Collab API is running",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Project routes (protected)
	projects := r.Group("/projects")
	projects.Use(middleware.RequireAuth(tokens))
	{
		projects.GET("", projectHandler.ListProjects)
		projects.POST("", projectHandler.CreateProject)
		projects.POST("/join/code/:code", projectHandler.JoinProject)
		projects.GET("/:id", projectHandler.GetProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
		projects.GET("/:id/members", projectHandler.GetMembers)

		projects.POST("/:id/tasks", taskHandler.CreateTask)
		projects.GET("/:id/tasks/:task_id", taskHandler.GetTask)
		projects.PUT("/:id/tasks/:task_id", taskHandler.EditTask)
		projects.PUT("/:id/tasks/:task_id/status", taskHandler.ChangeStatus)
		projects.PUT("/:id/tasks/:task_id/assign", taskHandler.AssignTask)
	}

	// Start server
	logger.Info("server starting", zap.String("addr", cfg.ServerAddr))
	if err := r.Run(cfg.ServerAddr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
