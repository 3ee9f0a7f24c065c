package models

import "time"

type User struct {
	ID           string    `gorm:"type:varchar(150);primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(50);not null" json:"name"`
	Email        string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(150);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Memberships   []Membership `gorm:"foreignKey:UserID" json:"-"`
	AssignedTasks []Task       `gorm:"foreignKey:AssigneeID" json:"-"`
}
