package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/collabhub/backend/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return classify(r.db.WithContext(ctx).Create(task).Error)
}

// FindByID finds a task by ID scoped to its project
func (r *GormTaskRepository) FindByID(ctx context.Context, id, projectID string, preload ...string) (*models.Task, error) {
	query := r.db.WithContext(ctx)
	for _, p := range preload {
		query = query.Preload(p)
	}

	var task models.Task
	if err := query.Where("id = ? AND project_id = ?", id, projectID).First(&task).Error; err != nil {
		return nil, classify(err)
	}
	return &task, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return classify(r.db.WithContext(ctx).Save(task).Error)
}
