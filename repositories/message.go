package repositories

import (
	"gorm.io/gorm"

	"github.com/gigmarket/api/models"
)

// MessageRepository handles database operations for contract messages.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository instance
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message.
func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindByContract lists a contract's messages, newest first.
func (r *MessageRepository) FindByContract(contractID string, limit, offset int) ([]models.Message, int64, error) {
	var messages []models.Message
	var totalCount int64

	db := r.db.Model(&models.Message{}).Where("contract_id = ?", contractID)
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at desc").Limit(limit).Offset(offset).Find(&messages).Error
	return messages, totalCount, err
}
