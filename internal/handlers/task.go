package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collabhub/backend/internal/dto"
	apierrors "github.com/collabhub/backend/internal/errors"
	"github.com/collabhub/backend/internal/middleware"
	"github.com/collabhub/backend/internal/models"
	"github.com/collabhub/backend/internal/repository"
	"github.com/collabhub/backend/internal/services"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task in a project. Owner-only.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "no identity in request context")
		return
	}

	type CreateTaskRequest struct {
		Name        string            `json:"name" binding:"required"`
		Description string            `json:"description"`
		Assignee    string            `json:"assignee" binding:"required"`
		Status      models.TaskStatus `json:"status"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), services.CreateTaskInput{
		ProjectID:   c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		AssigneeID:  req.Assignee,
		Status:      req.Status,
		RequesterID: identity.UserID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a task with its assignee profile.
func (h *TaskHandler) GetTask(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "no identity in request context")
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), c.Param("task_id"), c.Param("id"), identity.UserID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// EditTask updates a task's name and description. Owner or assignee only.
func (h *TaskHandler) EditTask(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "no identity in request context")
		return
	}

	type EditTaskRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	var req EditTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	task, err := h.taskService.Edit(c.Request.Context(), services.EditTaskInput{
		TaskID:      c.Param("task_id"),
		ProjectID:   c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		RequesterID: identity.UserID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ChangeStatus sets a task's status. Owner or assignee only.
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "no identity in request context")
		return
	}

	type ChangeStatusRequest struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	task, err := h.taskService.ChangeStatus(c.Request.Context(), c.Param("task_id"), c.Param("id"), req.Status, identity.UserID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// AssignTask reassigns a task to another project member. Owner-only.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "no identity in request context")
		return
	}

	type AssignTaskRequest struct {
		Assignee string `json:"assignee" binding:"required"`
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	task, err := h.taskService.ChangeAssignee(c.Request.Context(), c.Param("task_id"), c.Param("id"), req.Assignee, identity.UserID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNameRequired),
		errors.Is(err, services.ErrInvalidTaskStatus):
		apierrors.BadRequest(c, "Invalid value in the input field", err.Error())
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProjectMember),
		errors.Is(err, services.ErrNotProjectOwner),
		errors.Is(err, services.ErrNotTaskAssignee),
		errors.Is(err, services.ErrAssigneeNotMember):
		apierrors.BadRequest(c, "Operation not permitted", err.Error())
	case errors.Is(err, repository.ErrOverloaded):
		apierrors.DBFailure(c)
	default:
		apierrors.ServerFailure(c)
	}
}
