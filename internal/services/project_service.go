package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/collabhub/backend/internal/constants"
	"github.com/collabhub/backend/internal/models"
	"github.com/collabhub/backend/internal/repository"
	"github.com/collabhub/backend/internal/utils"
)

var (
	ErrProjectNameRequired = errors.New("project name cannot be empty")
	ErrJoinCodeNotFound    = errors.New("no project with this code")
	ErrAlreadyMember       = errors.New("user is already a member of this project")
	ErrJoinCodeExhausted   = errors.New("failed to allocate a unique join code")
)

// ProjectService provides business logic for project lifecycle operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	membership  *MembershipService
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, membership *MembershipService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		membership:  membership,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	Deadline    time.Time
	OwnerID     string
}

// Create creates a project and its Owner membership in a single transaction.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProjectNameRequired
	}

	if _, err := s.userRepo.FindByID(ctx, input.OwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	id, err := utils.GenerateID("PROJECT_")
	if err != nil {
		return nil, fmt.Errorf("failed to generate project id: %w", err)
	}

	code, err := s.allocateJoinCode(ctx)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Deadline:    input.Deadline,
		Code:        code,
	}

	owner := &models.Membership{
		UserID:    input.OwnerID,
		Role:      models.RoleOwner,
		CreatedAt: time.Now(),
	}

	if err := s.projectRepo.CreateWithOwner(ctx, project, owner); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// List returns every membership the user holds, with projects preloaded.
func (s *ProjectService) List(ctx context.Context, userID string) ([]models.Membership, error) {
	memberships, err := s.projectRepo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return memberships, nil
}

// Get returns a project and the caller's role in it.
func (s *ProjectService) Get(ctx context.Context, projectID, userID string) (*models.Project, models.Role, error) {
	role, err := s.membership.RequireMember(ctx, projectID, userID)
	if err != nil {
		return nil, "", err
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find project: %w", err)
	}

	return project, role, nil
}

// Members returns all memberships of a project, with user profiles.
// The caller must be a member.
func (s *ProjectService) Members(ctx context.Context, projectID, userID string) ([]models.Membership, error) {
	if _, err := s.membership.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}

	members, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}

	return members, nil
}

// Delete removes a project along with its tasks and memberships.
// Owner-only.
func (s *ProjectService) Delete(ctx context.Context, projectID, userID string) error {
	if err := s.membership.RequireOwner(ctx, projectID, userID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// JoinByCode adds the user to the project identified by the join code with
// the Member role.
func (s *ProjectService) JoinByCode(ctx context.Context, code, userID string) (*models.Project, error) {
	project, err := s.projectRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJoinCodeNotFound
		}
		return nil, fmt.Errorf("failed to find project by code: %w", err)
	}

	if _, err := s.projectRepo.FindMember(ctx, project.ID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.Membership{
		UserID:    userID,
		ProjectID: project.ID,
		Role:      models.RoleMember,
		CreatedAt: time.Now(),
	}

	if err := s.projectRepo.AddMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add member to project: %w", err)
	}

	return project, nil
}

// allocateJoinCode generates a join code, regenerating on collision up to
// MaxJoinCodeAttempts times before giving up.
func (s *ProjectService) allocateJoinCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < constants.MaxJoinCodeAttempts; attempt++ {
		code, err := utils.GenerateJoinCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate join code: %w", err)
		}

		taken, err := s.projectRepo.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check join code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrJoinCodeExhausted
}
