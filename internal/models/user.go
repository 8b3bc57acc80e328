package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile represents a platform member. Role is the source of truth for admin access.
type Profile struct {
	Base
	Username              string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email                 string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash          string    `gorm:"size:255;not null" json:"-"`
	Role                  string    `gorm:"size:20;not null;default:user" json:"role"`
	Bio                   string    `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL             *string   `gorm:"size:500" json:"avatar_url,omitempty"`
	CurrentJackpotEntries int       `gorm:"not null;default:0" json:"current_jackpot_entries"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// TableName specifies the table name for Profile model
func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
