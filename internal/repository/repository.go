package repository

import (
	"context"

	"github.com/collabhub/backend/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// CreateWithOwner creates a project and its owner membership within a
	// single transaction.
	CreateWithOwner(ctx context.Context, project *models.Project, owner *models.Membership) error

	// FindByID finds a project by ID
	FindByID(ctx context.Context, id string) (*models.Project, error)

	// FindByCode finds a project by join code
	FindByCode(ctx context.Context, code string) (*models.Project, error)

	// CodeExists reports whether a join code is already taken
	CodeExists(ctx context.Context, code string) (bool, error)

	// Delete deletes a project together with its tasks and memberships
	Delete(ctx context.Context, id string) error

	// AddMember adds a member to a project
	AddMember(ctx context.Context, member *models.Membership) error

	// FindMember finds a specific project membership
	FindMember(ctx context.Context, projectID, userID string) (*models.Membership, error)

	// ListMembers lists all members of a project
	ListMembers(ctx context.Context, projectID string) ([]models.Membership, error)

	// ListMembershipsByUser lists all memberships a user holds
	ListMembershipsByUser(ctx context.Context, userID string) ([]models.Membership, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID within a project, with optional preloading
	FindByID(ctx context.Context, id, projectID string, preload ...string) (*models.Task, error)

	// Update updates a task
	Update(ctx context.Context, task *models.Task) error
}
