package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MilestoneStatus defines lifecycle states for a milestone.
type MilestoneStatus string

const (
	MilestonePending  MilestoneStatus = "pending"
	MilestoneFunded   MilestoneStatus = "funded"
	MilestoneInReview MilestoneStatus = "in_review"
	MilestoneReleased MilestoneStatus = "released"
	MilestoneDisputed MilestoneStatus = "disputed"
)

// Milestone is a scoped, payable deliverable unit within a contract.
type Milestone struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid"`
	ContractID  string          `json:"contractId" gorm:"type:uuid;not null;index"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	Amount      float64         `json:"amount" gorm:"not null"`
	Status      MilestoneStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	DueAt       *time.Time      `json:"dueAt"`
	Escrow      *Escrow         `json:"escrow,omitempty" gorm:"foreignKey:MilestoneID"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (m *Milestone) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
