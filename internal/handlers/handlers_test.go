package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/collabhub/backend/internal/constants"
	"github.com/collabhub/backend/internal/database"
	"github.com/collabhub/backend/internal/middleware"
	"github.com/collabhub/backend/internal/models"
	"github.com/collabhub/backend/internal/repository"
	"github.com/collabhub/backend/internal/services"
	"github.com/collabhub/backend/internal/token"
)

const testSecret = "handler-test-secret"

type testEnv struct {
	db             *gorm.DB
	router         *gin.Engine
	tokens         *token.Service
	authService    *services.AuthService
	projectService *services.ProjectService
	taskService    *services.TaskService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Membership{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := token.NewService(testSecret)
	membershipService := services.NewMembershipService(projectRepo)
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, membershipService)
	taskService := services.NewTaskService(taskRepo, userRepo, membershipService)

	authHandler := NewAuthHandler(authService, tokens)
	projectHandler := NewProjectHandler(projectService)
	taskHandler := NewTaskHandler(taskService)

	r := gin.New()
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

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

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:             db,
		router:         r,
		tokens:         tokens,
		authService:    authService,
		projectService: projectService,
		taskService:    taskService,
	}
}

func registerTestUser(t *testing.T, env testEnv, name, email string) *models.User {
	t.Helper()
	user, err := env.authService.Register(context.Background(), services.RegisterInput{
		Name:     name,
		Email:    email,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user
}

func createTestProject(t *testing.T, env testEnv, ownerID string) *models.Project {
	t.Helper()
	project, err := env.projectService.Create(context.Background(), services.CreateProjectInput{
		Name:     "apollo",
		Deadline: time.Now().Add(72 * time.Hour),
		OwnerID:  ownerID,
	})
	require.NoError(t, err)
	return project
}

// doRequest performs a request against the test router, authenticated as
// user when one is given.
func doRequest(t *testing.T, env testEnv, method, url string, payload interface{}, user *models.User) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		signed, err := env.tokens.Issue(user)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: constants.TokenCookieName, Value: signed})
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// errorEnvelope mirrors the JSON error body for assertions.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Details string `json:"details"`
		Code    string `json:"code"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}
