package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/collabhub/backend/internal/models"
	"github.com/collabhub/backend/internal/repository"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrNotProjectMember = errors.New("user is not a member of the project")
	ErrNotProjectOwner  = errors.New("user is not an owner of the project")
)

// MembershipService is the authorization authority consulted before every
// project and task operation.
type MembershipService struct {
	projectRepo repository.ProjectRepository
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(projectRepo repository.ProjectRepository) *MembershipService {
	return &MembershipService{
		projectRepo: projectRepo,
	}
}

// RoleOf returns the user's role in the project. Project existence is
// checked first, so ErrProjectNotFound takes precedence over
// ErrNotProjectMember when the project itself does not exist.
func (s *MembershipService) RoleOf(ctx context.Context, projectID, userID string) (models.Role, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrProjectNotFound
		}
		return "", fmt.Errorf("failed to find project: %w", err)
	}

	member, err := s.projectRepo.FindMember(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotProjectMember
		}
		return "", fmt.Errorf("failed to find membership: %w", err)
	}

	return member.Role, nil
}

// RequireMember verifies the user holds any membership in the project and
// returns their role.
func (s *MembershipService) RequireMember(ctx context.Context, projectID, userID string) (models.Role, error) {
	return s.RoleOf(ctx, projectID, userID)
}

// RequireOwner verifies the user holds an Owner membership in the project.
// A failed member check surfaces as ErrNotProjectMember before
// ErrNotProjectOwner is considered.
func (s *MembershipService) RequireOwner(ctx context.Context, projectID, userID string) error {
	role, err := s.RoleOf(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if role != models.RoleOwner {
		return ErrNotProjectOwner
	}
	return nil
}
