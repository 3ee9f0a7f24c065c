package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/collabhub/backend/internal/dto"
	apierrors "github.com/collabhub/backend/internal/errors"
	"github.com/collabhub/backend/internal/middleware"
	"github.com/collabhub/backend/internal/repository"
	"github.com/collabhub/backend/internal/services"
)

// ProjectHandler coordinates project lifecycle HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a project owned by the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "no identity in request context")
		return
	}

	type CreateProjectRequest struct {
		Name        string    `json:"name" binding:"required"`
		Description string    `json:"description"`
		Deadline    time.Time `json:"deadline" binding:"required"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
		OwnerID:     identity.UserID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns every project the caller belongs to, with their role.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "no identity in request context")
		return
	}

	memberships, err := h.projectService.List(c.Request.Context(), identity.UserID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	projects := make([]dto.ProjectWithRoleDTO, len(memberships))
	for i, membership := range memberships {
		projects[i] = dto.ToProjectWithRoleDTO(membership)
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
	})
}

// GetProject returns a single project with the caller's role.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "no identity in request context")
		return
	}

	project, role, err := h.projectService.Get(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project":   dto.ToProjectDTO(*project),
		"your_role": role,
	})
}

// GetMembers lists a project's members with their profiles.
func (h *ProjectHandler) GetMembers(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "no identity in request context")
		return
	}

	members, err := h.projectService.Members(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": dto.ToMemberDTOs(members),
	})
}

// DeleteProject deletes a project and everything it owns. Owner-only.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "no identity in request context")
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), c.Param("id"), identity.UserID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// JoinProject adds the caller to a project by join code.
func (h *ProjectHandler) JoinProject(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "no identity in request context")
		return
	}

	project, err := h.projectService.JoinByCode(c.Request.Context(), c.Param("code"), identity.UserID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Joined project successfully",
		"project": dto.ToProjectDTO(*project),
	})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNameRequired):
		apierrors.BadRequest(c, "Invalid value in the input field", err.Error())
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrJoinCodeNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProjectMember),
		errors.Is(err, services.ErrNotProjectOwner),
		errors.Is(err, services.ErrAlreadyMember):
		apierrors.BadRequest(c, "Operation not permitted", err.Error())
	case errors.Is(err, repository.ErrOverloaded):
		apierrors.DBFailure(c)
	default:
		apierrors.ServerFailure(c)
	}
}
