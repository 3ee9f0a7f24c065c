package models

import "time"

type Role string

const (
	RoleOwner  Role = "Owner"
	RoleMember Role = "Member"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleMember:
		return true
	}
	return false
}

// Membership links a user to a project with a role. Exactly one row may
// exist per (user, project) pair.
type Membership struct {
	UserID    string    `gorm:"type:varchar(150);primarykey" json:"user_id"`
	ProjectID string    `gorm:"type:varchar(150);primarykey" json:"project_id"`
	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
