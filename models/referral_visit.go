package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReferralVisit records one hit on a client's referral landing page. Rows are
// written fire-and-forget when a slug is decoded; there is no delivery
// guarantee and nothing ever reads them back except the share-page counters.
type ReferralVisit struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Slug         string `gorm:"size:200;not null;index" json:"slug"`
	ReferrerName string `gorm:"size:200" json:"referrer_name"`
	IPAddress    string `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	UserAgent    string `gorm:"type:text" json:"user_agent,omitempty"`
}

// BeforeCreate hook to generate UUID
func (v *ReferralVisit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for ReferralVisit model
func (ReferralVisit) TableName() string {
	return "referral_visits"
}
