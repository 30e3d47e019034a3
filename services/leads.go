package services

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"chatman_legal_go/config"
	"chatman_legal_go/models"
)

// leadSanitizer strips all markup from visitor-supplied text before storage.
var leadSanitizer = bluemonday.StrictPolicy()

// SanitizeText removes any HTML from free-text input. Public forms accept
// arbitrary strings; this runs on every field that gets rendered back to
// staff or clients.
func SanitizeText(s string) string {
	return strings.TrimSpace(leadSanitizer.Sanitize(s))
}

// CreateLead persists an inbound inquiry. Whatever the entry point claims,
// the lead lands with status "new"; only staff move it afterwards. Free-text
// fields are sanitized, and staff get an async notification email.
func CreateLead(db *gorm.DB, cfg *config.Config, lead *models.Lead) error {
	lead.Status = models.LeadStatusNew

	lead.FirstName = SanitizeText(lead.FirstName)
	lead.LastName = SanitizeText(lead.LastName)
	lead.Email = SanitizeText(lead.Email)
	lead.Phone = SanitizeText(lead.Phone)
	lead.PracticeArea = SanitizeText(lead.PracticeArea)
	lead.Message = SanitizeText(lead.Message)

	if lead.Source == "" {
		lead.Source = models.LeadSourceManual
	}

	if err := db.Create(lead).Error; err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}

	if cfg != nil && cfg.IntakeNotifyEmail != "" {
		SendEmailAsync(cfg, BuildLeadNotificationEmail(cfg.IntakeNotifyEmail, lead))
	}

	return nil
}

// BookingMessage formats the free text stored for a consultation booking.
func BookingMessage(preferredDate, preferredTime, message string) string {
	return fmt.Sprintf("Preferred Date: %s\nPreferred Time: %s\n\n%s", preferredDate, preferredTime, message)
}

// LeadFilter narrows ListLeads. Zero values mean no constraint.
type LeadFilter struct {
	Status string
	Source string
	Search string
}

// ListLeads returns leads newest first, optionally filtered.
func ListLeads(db *gorm.DB, filter LeadFilter) ([]models.Lead, error) {
	query := db.Model(&models.Lead{}).Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like)
	}

	var leads []models.Lead
	if err := query.Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

// GetLead fetches a single lead by ID.
func GetLead(db *gorm.DB, id string) (*models.Lead, error) {
	var lead models.Lead
	if err := db.First(&lead, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// UpdateLeadStatus moves a lead to a new lifecycle status. Unknown statuses
// are rejected here; reads degrade softly, writes do not.
func UpdateLeadStatus(db *gorm.DB, id, status string) (*models.Lead, error) {
	if !models.IsValidLeadStatus(status) {
		return nil, fmt.Errorf("invalid lead status: %s", status)
	}

	var lead models.Lead
	if err := db.First(&lead, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&lead).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}
	lead.Status = status
	return &lead, nil
}
