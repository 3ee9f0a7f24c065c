package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/collabhub/backend/internal/models"
	"github.com/collabhub/backend/internal/repository"
	"github.com/collabhub/backend/internal/utils"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskNameRequired  = errors.New("task name cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrAssigneeNotMember = errors.New("assignee is not a member of the project")
	ErrNotTaskAssignee   = errors.New("user is neither the project owner nor the task assignee")
)

// TaskService handles task business logic. Status transitions are
// deliberately permissive: any status may be set to any other status by an
// authorized actor.
type TaskService struct {
	taskRepo   repository.TaskRepository
	userRepo   repository.UserRepository
	membership *MembershipService
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, membership *MembershipService) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		userRepo:   userRepo,
		membership: membership,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	ProjectID   string
	Name        string
	Description string
	AssigneeID  string
	Status      models.TaskStatus
	RequesterID string
}

// Create creates a task. Only project owners may create tasks; the assignee
// must be an existing user and a member of the project.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTaskNameRequired
	}
	if input.Status == "" {
		input.Status = models.TaskStatusToDo
	}
	if !input.Status.IsValid() {
		return nil, ErrInvalidTaskStatus
	}

	if err := s.membership.RequireOwner(ctx, input.ProjectID, input.RequesterID); err != nil {
		return nil, err
	}

	if err := s.requireAssignee(ctx, input.ProjectID, input.AssigneeID); err != nil {
		return nil, err
	}

	id, err := utils.GenerateID("TASK_")
	if err != nil {
		return nil, fmt.Errorf("failed to generate task id: %w", err)
	}

	task := &models.Task{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		ProjectID:   input.ProjectID,
		AssigneeID:  input.AssigneeID,
		Status:      input.Status,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(ctx, task.ID, task.ProjectID, "Assignee")
}

// Get returns a task with its assignee profile resolved. The requester must
// be a member of the project.
func (s *TaskService) Get(ctx context.Context, taskID, projectID, requesterID string) (*models.Task, error) {
	if _, err := s.membership.RequireMember(ctx, projectID, requesterID); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, taskID, projectID, "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// EditTaskInput represents input for editing a task.
type EditTaskInput struct {
	TaskID      string
	ProjectID   string
	Name        *string
	Description *string
	RequesterID string
}

// Edit updates a task's name and description. Allowed iff the requester is
// the project owner or the task's assignee.
func (s *TaskService) Edit(ctx context.Context, input EditTaskInput) (*models.Task, error) {
	task, err := s.authorizeMutation(ctx, input.TaskID, input.ProjectID, input.RequesterID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrTaskNameRequired
		}
		task.Name = *input.Name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(ctx, task.ID, task.ProjectID, "Assignee")
}

// ChangeStatus sets a task's status. Same authorization rule as Edit; any
// status is reachable from any other.
func (s *TaskService) ChangeStatus(ctx context.Context, taskID, projectID string, status models.TaskStatus, requesterID string) (*models.Task, error) {
	if !status.IsValid() {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.authorizeMutation(ctx, taskID, projectID, requesterID)
	if err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return s.taskRepo.FindByID(ctx, task.ID, task.ProjectID, "Assignee")
}

// ChangeAssignee reassigns a task. Owner-only; the new assignee must be an
// existing user and a member of the project.
func (s *TaskService) ChangeAssignee(ctx context.Context, taskID, projectID, newAssigneeID, requesterID string) (*models.Task, error) {
	if err := s.membership.RequireOwner(ctx, projectID, requesterID); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, taskID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.requireAssignee(ctx, projectID, newAssigneeID); err != nil {
		return nil, err
	}

	task.AssigneeID = newAssigneeID
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to reassign task: %w", err)
	}

	return s.taskRepo.FindByID(ctx, task.ID, task.ProjectID, "Assignee")
}

// authorizeMutation loads a task and verifies the requester may mutate it:
// project owners and the task's assignee are allowed, every other member is
// not.
func (s *TaskService) authorizeMutation(ctx context.Context, taskID, projectID, requesterID string) (*models.Task, error) {
	role, err := s.membership.RequireMember(ctx, projectID, requesterID)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, taskID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if role != models.RoleOwner && task.AssigneeID != requesterID {
		return nil, ErrNotTaskAssignee
	}

	return task, nil
}

// requireAssignee verifies the assignee exists and is a member of the
// project. A missing user surfaces as ErrUserNotFound before the membership
// check runs.
func (s *TaskService) requireAssignee(ctx context.Context, projectID, assigneeID string) error {
	if _, err := s.userRepo.FindByID(ctx, assigneeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find assignee: %w", err)
	}

	if _, err := s.membership.RoleOf(ctx, projectID, assigneeID); err != nil {
		if errors.Is(err, ErrNotProjectMember) {
			return ErrAssigneeNotMember
		}
		return err
	}

	return nil
}
