package models

import "time"

type Project struct {
	ID          string    `gorm:"type:varchar(150);primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(150);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Deadline    time.Time `gorm:"not null" json:"deadline"`
	Code        string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Memberships []Membership `gorm:"foreignKey:ProjectID" json:"memberships,omitempty"`
	Tasks       []Task       `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
