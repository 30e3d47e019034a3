package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment status constants
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment represents a scheduled meeting between a client and an attorney,
// optionally tied to a case.
type Appointment struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CaseID *string `gorm:"type:uuid;index" json:"case_id,omitempty"`
	Case   *Case   `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	ClientID   string `gorm:"type:uuid;not null;index" json:"client_id"`
	Client     User   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	AttorneyID string `gorm:"type:uuid;not null;index" json:"attorney_id"`
	Attorney   User   `gorm:"foreignKey:AttorneyID" json:"attorney,omitempty"`

	Title           string    `gorm:"not null" json:"title"`
	ScheduledAt     time.Time `gorm:"not null;index" json:"scheduled_at"`
	DurationMinutes int       `gorm:"not null;default:30" json:"duration_minutes"`
	Status          string    `gorm:"size:20;not null;default:scheduled;index" json:"status"`

	// Physical location or meeting link
	Location string `gorm:"size:500" json:"location,omitempty"`
}

// BeforeCreate hook to generate UUID
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// IsValidAppointmentStatus checks if the status is valid
func IsValidAppointmentStatus(status string) bool {
	switch status {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// IsCancellable checks if the appointment can still be cancelled
func (a *Appointment) IsCancellable() bool {
	return a.Status == AppointmentStatusScheduled
}
