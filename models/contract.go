package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContractType mirrors the type of the project the contract was created for.
type ContractType string

const (
	ContractTypeFixed  ContractType = "fixed"
	ContractTypeHourly ContractType = "hourly"
)

// ContractStatus defines lifecycle states for a contract.
type ContractStatus string

const (
	ContractActive     ContractStatus = "active"
	ContractCompleted  ContractStatus = "completed"
	ContractTerminated ContractStatus = "terminated"
)

// Contract is the binding agreement materialized when a proposal is
// accepted. Exactly one of AgreedAmount / HourlyRate is populated, selected
// by ContractType.
type Contract struct {
	ID           string         `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID    string         `json:"projectId" gorm:"type:uuid;not null;index"`
	Project      *Project       `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	ProposalID   string         `json:"proposalId" gorm:"type:uuid;not null"`
	ClientID     string         `json:"clientId" gorm:"type:uuid;not null;index"`
	FreelancerID string         `json:"freelancerId" gorm:"type:uuid;not null;index"`
	ContractType ContractType   `json:"contractType" gorm:"type:varchar(10);not null"`
	Status       ContractStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	AgreedAmount *float64       `json:"agreedAmount"` // fixed contracts only
	HourlyRate   *float64       `json:"hourlyRate"`   // hourly contracts only
	Currency     string         `json:"currency" gorm:"type:varchar(3);not null"`
	StartAt      time.Time      `json:"startAt"`
	EndAt        *time.Time     `json:"endAt"`
	Milestones   []Milestone    `json:"milestones,omitempty" gorm:"foreignKey:ContractID"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.StartAt.IsZero() {
		c.StartAt = time.Now()
	}
	return nil
}

// Participant reports whether the given user is a party to the contract.
func (c *Contract) Participant(userID string) bool {
	return c.ClientID == userID || c.FreelancerID == userID
}
