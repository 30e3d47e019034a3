package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case lifecycle status constants
const (
	CaseStatusIntake  = "intake"
	CaseStatusActive  = "active"
	CaseStatusPending = "pending"
	CaseStatusClosed  = "closed"
	CaseStatusWon     = "won"
	CaseStatusSettled = "settled"
)

// CaseStatuses lists every known case status in lifecycle order.
var CaseStatuses = []string{
	CaseStatusIntake,
	CaseStatusActive,
	CaseStatusPending,
	CaseStatusSettled,
	CaseStatusWon,
	CaseStatusClosed,
}

// Case represents a legal matter managed by staff on behalf of a client.
// Cases are never hard-deleted; closed matters stay queryable.
type Case struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Identification
	CaseNumber   string `gorm:"not null;uniqueIndex" json:"case_number"`
	Title        string `gorm:"not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	PracticeArea string `gorm:"size:100;index" json:"practice_area"`

	// Lifecycle
	Status string `gorm:"not null;default:intake;index" json:"status"`

	// People
	ClientID   string  `gorm:"type:uuid;not null;index" json:"client_id"`
	Client     User    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	AttorneyID *string `gorm:"type:uuid;index" json:"attorney_id,omitempty"`
	Attorney   *User   `gorm:"foreignKey:AttorneyID" json:"attorney,omitempty"`

	// Schedule and outcome
	NextHearingDate  *time.Time `gorm:"index" json:"next_hearing_date,omitempty"`
	SettlementAmount *float64   `json:"settlement_amount,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// IsValidCaseStatus checks if the status is one of the known lifecycle values
func IsValidCaseStatus(status string) bool {
	for _, s := range CaseStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsResolved reports whether the case has reached a terminal status
func (c *Case) IsResolved() bool {
	switch c.Status {
	case CaseStatusWon, CaseStatusSettled, CaseStatusClosed:
		return true
	}
	return false
}
