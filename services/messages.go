package services

import (
	"fmt"

	"gorm.io/gorm"

	"chatman_legal_go/models"
)

// SendMessage appends a message to a case thread. The body is sanitized and
// must be non-empty after sanitization.
func SendMessage(db *gorm.DB, caseID, senderID, body string) (*models.Message, error) {
	body = SanitizeText(body)
	if body == "" {
		return nil, fmt.Errorf("message body is required")
	}

	msg := &models.Message{
		CaseID:   caseID,
		SenderID: senderID,
		Body:     body,
	}
	if err := db.Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return msg, nil
}

// CaseMessages returns a case thread oldest first and marks everything the
// viewer hasn't sent as read. The flag only ever moves from unread to read.
func CaseMessages(db *gorm.DB, caseID, viewerID string) ([]models.Message, error) {
	if err := MarkThreadRead(db, caseID, viewerID); err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := db.Preload("Sender").
		Where("case_id = ?", caseID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// MarkThreadRead flips the read flag on every message in the case that the
// viewer did not send.
func MarkThreadRead(db *gorm.DB, caseID, viewerID string) error {
	err := db.Model(&models.Message{}).
		Where("case_id = ? AND sender_id != ? AND is_read = ?", caseID, viewerID, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark thread read: %w", err)
	}
	return nil
}

// UnreadCount returns how many messages across the given cases the viewer
// hasn't seen.
func UnreadCount(db *gorm.DB, caseIDs []string, viewerID string) (int64, error) {
	if len(caseIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := db.Model(&models.Message{}).
		Where("case_id IN ? AND sender_id != ? AND is_read = ?", caseIDs, viewerID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
