package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProposalStatus defines lifecycle states for a proposal.
type ProposalStatus string

const (
	ProposalSubmitted   ProposalStatus = "submitted"
	ProposalShortlisted ProposalStatus = "shortlisted"
	ProposalAccepted    ProposalStatus = "accepted"
	ProposalRejected    ProposalStatus = "rejected"
	ProposalWithdrawn   ProposalStatus = "withdrawn"
)

// Proposal is a freelancer's bid on a project. A freelancer may submit at
// most one proposal per project.
type Proposal struct {
	ID             string         `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID      string         `json:"projectId" gorm:"type:uuid;not null;uniqueIndex:idx_proposals_project_freelancer"`
	Project        *Project       `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	FreelancerID   string         `json:"freelancerId" gorm:"type:uuid;not null;uniqueIndex:idx_proposals_project_freelancer"`
	Freelancer     *User          `json:"freelancer,omitempty" gorm:"foreignKey:FreelancerID"`
	BidAmount      *float64       `json:"bidAmount"`      // fixed-price projects
	HourlyRate     *float64       `json:"hourlyRate"`     // hourly projects
	EstimatedHours *int           `json:"estimatedHours"` // hourly projects
	CoverLetter    string         `json:"coverLetter" gorm:"type:text"`
	Status         ProposalStatus `json:"status" gorm:"type:varchar(20);not null;default:'submitted';index"`
	SubmittedAt    time.Time      `json:"submittedAt"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.SubmittedAt.IsZero() {
		p.SubmittedAt = time.Now()
	}
	return nil
}
