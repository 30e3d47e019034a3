package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleClient   = "client"
	RoleAttorney = "attorney"
	RoleAdmin    = "admin"
)

// User represents a person known to the system: a portal client, an attorney,
// or a firm admin. The role is fixed at account creation.
type User struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string     `gorm:"not null" json:"name"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Phone       string     `gorm:"size:30" json:"phone"`
	AvatarURL   string     `gorm:"size:500" json:"avatar_url,omitempty"`
	Role        string     `gorm:"not null;default:client;index" json:"role"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// IsStaff reports whether the user may access the admin dashboard
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleAttorney
}

// IsValidRole checks if the role is valid
func IsValidRole(role string) bool {
	switch role {
	case RoleClient, RoleAttorney, RoleAdmin:
		return true
	}
	return false
}
