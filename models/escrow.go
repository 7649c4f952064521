package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EscrowStatus defines lifecycle states for held funds.
type EscrowStatus string

const (
	EscrowHeld     EscrowStatus = "held"
	EscrowReleased EscrowStatus = "released"
	EscrowRefunded EscrowStatus = "refunded"
)

// Escrow records funds held against a milestone pending release.
type Escrow struct {
	ID          string       `json:"id" gorm:"primaryKey;type:uuid"`
	MilestoneID string       `json:"milestoneId" gorm:"type:uuid;uniqueIndex;not null"`
	Amount      float64      `json:"amount" gorm:"not null"`
	Currency    string       `json:"currency" gorm:"type:varchar(3);not null"`
	Status      EscrowStatus `json:"status" gorm:"type:varchar(20);not null;default:'held'"`
	FundedAt    time.Time    `json:"fundedAt"`
	ReleasedAt  *time.Time   `json:"releasedAt"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (e *Escrow) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.FundedAt.IsZero() {
		e.FundedAt = time.Now()
	}
	return nil
}
