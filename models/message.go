package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is one unit of case-scoped correspondence between a client and the
// firm. Messages are append-only: never edited, never deleted. The read flag
// flips from false to true when the non-sender views the thread and never
// reverses.
type Message struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseID   string `gorm:"type:uuid;not null;index" json:"case_id"`
	Case     Case   `gorm:"foreignKey:CaseID" json:"-"`
	SenderID string `gorm:"type:uuid;not null;index" json:"sender_id"`
	Sender   User   `gorm:"foreignKey:SenderID" json:"sender,omitempty"`

	Body   string `gorm:"type:text;not null" json:"body"`
	IsRead bool   `gorm:"not null;default:false;index" json:"is_read"`
}

// BeforeCreate hook to generate UUID
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Message model
func (Message) TableName() string {
	return "messages"
}
