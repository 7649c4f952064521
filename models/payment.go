package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentStatus defines lifecycle states for a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment is a ledger entry recording funds moved from client to freelancer
// when a milestone is released.
type Payment struct {
	ID          string        `json:"id" gorm:"primaryKey;type:uuid"`
	ContractID  string        `json:"contractId" gorm:"type:uuid;not null;index"`
	MilestoneID string        `json:"milestoneId" gorm:"type:uuid;not null;index"`
	PayerID     string        `json:"payerId" gorm:"type:uuid;not null"`
	PayeeID     string        `json:"payeeId" gorm:"type:uuid;not null"`
	Amount      float64       `json:"amount" gorm:"not null"`
	Currency    string        `json:"currency" gorm:"type:varchar(3);not null"`
	Status      PaymentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	PaidAt      *time.Time    `json:"paidAt"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
