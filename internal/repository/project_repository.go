package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/collabhub/backend/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithOwner creates the project and its owner membership atomically.
// A project must never exist without at least its creating owner.
func (r *GormProjectRepository) CreateWithOwner(ctx context.Context, project *models.Project, owner *models.Membership) error {
	return classify(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		owner.ProjectID = project.ID

		return tx.Create(owner).Error
	}))
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return &project, nil
}

// FindByCode finds a project by join code
func (r *GormProjectRepository) FindByCode(ctx context.Context, code string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&project).Error; err != nil {
		return nil, classify(err)
	}
	return &project, nil
}

// CodeExists reports whether a join code is already taken
func (r *GormProjectRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("code = ?", code).Count(&count).Error; err != nil {
		return false, classify(err)
	}
	return count > 0, nil
}

// Delete deletes a project, its tasks, and its memberships in a transaction
func (r *GormProjectRepository) Delete(ctx context.Context, id string) error {
	return classify(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Delete all tasks in the project
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		// Delete all memberships
		if err := tx.Where("project_id = ?", id).Delete(&models.Membership{}).Error; err != nil {
			return err
		}

		// Delete project
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	}))
}

// AddMember adds a member to a project
func (r *GormProjectRepository) AddMember(ctx context.Context, member *models.Membership) error {
	return classify(r.db.WithContext(ctx).Create(member).Error)
}

// FindMember finds a specific project membership
func (r *GormProjectRepository) FindMember(ctx context.Context, projectID, userID string) (*models.Membership, error) {
	var member models.Membership
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, classify(err)
	}
	return &member, nil
}

// ListMembers lists all members of a project with their user profiles
func (r *GormProjectRepository) ListMembers(ctx context.Context, projectID string) ([]models.Membership, error) {
	var members []models.Membership
	if err := r.db.WithContext(ctx).Preload("User").
		Where("project_id = ?", projectID).
		Find(&members).Error; err != nil {
		return nil, classify(err)
	}
	return members, nil
}

// ListMembershipsByUser lists all memberships a user holds, with projects
func (r *GormProjectRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := r.db.WithContext(ctx).Preload("Project").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, classify(err)
	}
	return memberships, nil
}
