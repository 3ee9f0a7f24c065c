package dto

import (
	"time"

	"github.com/collabhub/backend/internal/models"
)

// TaskDTO represents a task in API responses, with the assignee's profile
// denormalized when preloaded.
type TaskDTO struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ProjectID   string            `json:"project_id"`
	AssigneeID  string            `json:"assignee_id"`
	Status      models.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	Assignee    *UserDTO          `json:"assignee,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		ProjectID:   task.ProjectID,
		AssigneeID:  task.AssigneeID,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
	}

	// Include assignee profile if preloaded
	if task.Assignee.ID != "" {
		assignee := ToUserDTO(task.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}
