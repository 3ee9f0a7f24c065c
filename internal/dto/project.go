package dto

import (
	"time"

	"github.com/collabhub/backend/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Code        string    `json:"code"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectWithRoleDTO represents a project annotated with the caller's role
type ProjectWithRoleDTO struct {
	ProjectDTO
	Role models.Role `json:"role"`
}

// MemberDTO represents a member of a project
type MemberDTO struct {
	User     UserDTO     `json:"user"`
	Role     models.Role `json:"role"`
	JoinedAt time.Time   `json:"joined_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Deadline:    project.Deadline,
		Code:        project.Code,
		CreatedAt:   project.CreatedAt,
	}
}

// ToProjectWithRoleDTO converts a membership to a project DTO with the
// holder's role
func ToProjectWithRoleDTO(member models.Membership) ProjectWithRoleDTO {
	return ProjectWithRoleDTO{
		ProjectDTO: ToProjectDTO(member.Project),
		Role:       member.Role,
	}
}

// ToMemberDTO converts a membership to MemberDTO
func ToMemberDTO(member models.Membership) MemberDTO {
	return MemberDTO{
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.CreatedAt,
	}
}

// ToMemberDTOs converts a slice of memberships
func ToMemberDTOs(members []models.Membership) []MemberDTO {
	dtos := make([]MemberDTO, len(members))
	for i, member := range members {
		dtos[i] = ToMemberDTO(member)
	}
	return dtos
}
