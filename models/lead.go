package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead lifecycle status constants
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
	LeadStatusClosed    = "closed"
)

// LeadStatuses lists every known lead status in lifecycle order.
var LeadStatuses = []string{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusConverted,
	LeadStatusClosed,
}

// Lead entry points
const (
	LeadSourceContact  = "contact"
	LeadSourceBooking  = "booking"
	LeadSourceReferral = "referral"
	LeadSourcePopup    = "popup"
	LeadSourceImport   = "import"
	LeadSourceManual   = "manual"
)

// Lead is an unauthenticated inbound inquiry captured from one of the public
// forms or the bulk importer. Leads are created with status "new" and only
// ever advanced by staff; nothing else mutates them.
type Lead struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FirstName    string `gorm:"not null" json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `gorm:"index" json:"email"`
	Phone        string `gorm:"size:30" json:"phone"`
	PracticeArea string `gorm:"size:100" json:"practice_area"`
	Message      string `gorm:"type:text" json:"message"`

	Status string `gorm:"not null;default:new;index" json:"status"`
	Source string `gorm:"size:20;not null;default:contact;index" json:"source"`

	// Referral attribution: the slug of the referring client's share link,
	// when the lead arrived through one.
	ReferralSlug string `gorm:"size:200;index" json:"referral_slug,omitempty"`
}

// BeforeCreate hook to generate UUID
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Lead model
func (Lead) TableName() string {
	return "leads"
}

// IsValidLeadStatus checks if the status is one of the known lifecycle values
func IsValidLeadStatus(status string) bool {
	for _, s := range LeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// FullName joins the first and last name for display
func (l *Lead) FullName() string {
	if l.LastName == "" {
		return l.FirstName
	}
	return l.FirstName + " " + l.LastName
}
