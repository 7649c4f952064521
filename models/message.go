package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a chat message between contract participants.
type Message struct {
	ID         string     `json:"id" gorm:"primaryKey;type:uuid"`
	ContractID string     `json:"contractId" gorm:"type:uuid;not null;index"`
	SenderID   string     `json:"senderId" gorm:"type:uuid;not null"`
	Body       string     `json:"body" gorm:"type:text;not null"`
	ReadAt     *time.Time `json:"readAt"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
