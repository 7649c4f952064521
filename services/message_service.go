package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/models"
	"github.com/gigmarket/api/repositories"
)

// MessageService handles the message thread attached to a contract.
type MessageService struct {
	messageRepo  *repositories.MessageRepository
	contractRepo *repositories.ContractRepository
}

// NewMessageService creates a new message service instance
func NewMessageService(messageRepo *repositories.MessageRepository, contractRepo *repositories.ContractRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo, contractRepo: contractRepo}
}

// ListMessages returns a contract's thread for a participant or admin.
func (s *MessageService) ListMessages(contractID string, pg dto.Pagination, callerID string, callerRole models.Role) ([]models.Message, int64, error) {
	if err := s.authorize(contractID, callerID, callerRole); err != nil {
		return nil, 0, err
	}
	pg.Normalize()
	return s.messageRepo.FindByContract(contractID, pg.Limit, pg.Offset)
}

// SendMessage posts to a contract thread. Participants only.
func (s *MessageService) SendMessage(contractID string, req dto.CreateMessageRequest, callerID string, callerRole models.Role) (models.Message, error) {
	if err := s.authorize(contractID, callerID, callerRole); err != nil {
		return models.Message{}, err
	}

	message := models.Message{
		ContractID: contractID,
		SenderID:   callerID,
		Body:       req.Body,
	}
	if err := s.messageRepo.Create(&message); err != nil {
		return models.Message{}, err
	}
	return message, nil
}

func (s *MessageService) authorize(contractID, callerID string, callerRole models.Role) error {
	contract, err := s.contractRepo.FindByID(contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !contract.Participant(callerID) && callerRole != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
