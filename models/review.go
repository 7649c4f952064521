package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is feedback left by one contract participant about the other after
// the contract completes. One review per (contract, reviewer).
type Review struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	ContractID string    `json:"contractId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_contract_reviewer"`
	ReviewerID string    `json:"reviewerId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_contract_reviewer"`
	RevieweeID string    `json:"revieweeId" gorm:"type:uuid;not null;index"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
