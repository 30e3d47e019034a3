package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"chatman_legal_go/models"
)

// GenerateCaseNumber produces the next case number as {PREFIX}-{YEAR}-{SEQ},
// with the sequence zero-padded to five digits and reset each year.
func GenerateCaseNumber(db *gorm.DB, prefix string) (string, error) {
	currentYear := time.Now().Year()

	var maxCase models.Case
	err := db.Where("case_number LIKE ?", fmt.Sprintf("%s-%d-%%", prefix, currentYear)).
		Order("case_number DESC").
		First(&maxCase).Error

	sequence := 1
	if err == nil {
		var parsedSeq int
		_, scanErr := fmt.Sscanf(maxCase.CaseNumber, fmt.Sprintf("%s-%d-%%d", prefix, currentYear), &parsedSeq)
		if scanErr == nil {
			sequence = parsedSeq + 1
		}
	} else if err != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("failed to query max case number: %w", err)
	}

	return fmt.Sprintf("%s-%d-%05d", prefix, currentYear, sequence), nil
}

// EnsureUniqueCaseNumber generates a unique case number with retry logic.
// Retries up to maxRetries times if a collision occurs.
func EnsureUniqueCaseNumber(db *gorm.DB, prefix string) (string, error) {
	const maxRetries = 10

	for i := 0; i < maxRetries; i++ {
		caseNumber, err := GenerateCaseNumber(db, prefix)
		if err != nil {
			return "", err
		}

		var count int64
		if err := db.Model(&models.Case{}).Where("case_number = ?", caseNumber).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check case number uniqueness: %w", err)
		}
		if count == 0 {
			return caseNumber, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique case number after %d retries", maxRetries)
}

// CreateCase opens a new matter for a client. The case number is assigned
// here; callers never pick their own. Status defaults to intake.
func CreateCase(db *gorm.DB, prefix string, c *models.Case) error {
	if c.ClientID == "" {
		return fmt.Errorf("client is required")
	}
	if c.Status == "" {
		c.Status = models.CaseStatusIntake
	}
	if !models.IsValidCaseStatus(c.Status) {
		return fmt.Errorf("invalid case status: %s", c.Status)
	}

	number, err := EnsureUniqueCaseNumber(db, prefix)
	if err != nil {
		return err
	}
	c.CaseNumber = number

	if err := db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

// CaseFilter narrows ListCases. Zero values mean no constraint.
type CaseFilter struct {
	Status       string
	ClientID     string
	AttorneyID   string
	PracticeArea string
}

// ListCases returns cases newest first with client and attorney preloaded.
func ListCases(db *gorm.DB, filter CaseFilter) ([]models.Case, error) {
	query := db.Model(&models.Case{}).
		Preload("Client").
		Preload("Attorney").
		Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if filter.AttorneyID != "" {
		query = query.Where("attorney_id = ?", filter.AttorneyID)
	}
	if filter.PracticeArea != "" {
		query = query.Where("practice_area = ?", filter.PracticeArea)
	}

	var cases []models.Case
	if err := query.Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

// GetCase fetches a case by ID with its people preloaded.
func GetCase(db *gorm.DB, id string) (*models.Case, error) {
	var c models.Case
	if err := db.Preload("Client").Preload("Attorney").First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCase applies staff edits. Case number, client, and timestamps are
// not editable; everything else is last-write-wins.
func UpdateCase(db *gorm.DB, id string, updates map[string]interface{}) (*models.Case, error) {
	allowed := map[string]bool{
		"title":             true,
		"description":       true,
		"practice_area":     true,
		"attorney_id":       true,
		"next_hearing_date": true,
		"settlement_amount": true,
	}
	filtered := make(map[string]interface{})
	for k, v := range updates {
		if allowed[k] {
			filtered[k] = v
		}
	}

	var c models.Case
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if len(filtered) > 0 {
		if err := db.Model(&c).Updates(filtered).Error; err != nil {
			return nil, fmt.Errorf("failed to update case: %w", err)
		}
	}
	return GetCase(db, id)
}

// UpdateCaseStatus moves a case through its lifecycle. Invalid statuses are
// rejected; there is no transition graph beyond that.
func UpdateCaseStatus(db *gorm.DB, id, status string) (*models.Case, error) {
	if !models.IsValidCaseStatus(status) {
		return nil, fmt.Errorf("invalid case status: %s", status)
	}

	var c models.Case
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&c).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update case status: %w", err)
	}
	c.Status = status
	return &c, nil
}

// ClientCases returns the cases belonging to one portal client, split into
// active and resolved groups for the portal dashboard.
func ClientCases(db *gorm.DB, clientID string) (active, resolved []models.Case, err error) {
	var all []models.Case
	if err = db.Preload("Attorney").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&all).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list client cases: %w", err)
	}

	for _, c := range all {
		if c.IsResolved() {
			resolved = append(resolved, c)
		} else {
			active = append(active, c)
		}
	}
	return active, resolved, nil
}
