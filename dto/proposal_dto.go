package dto

import "github.com/gigmarket/api/models"

// CreateProposalRequest represents a freelancer's bid. Pricing fields must
// match the project type; the service layer enforces that.
type CreateProposalRequest struct {
	ProjectID      string   `json:"projectId" binding:"required,uuid"`
	BidAmount      *float64 `json:"bidAmount" binding:"omitempty,gt=0"`
	HourlyRate     *float64 `json:"hourlyRate" binding:"omitempty,gt=0"`
	EstimatedHours *int     `json:"estimatedHours" binding:"omitempty,gt=0"`
	CoverLetter    string   `json:"coverLetter"`
}

// UpdateProposalRequest is role-dispatched: freelancers may edit pricing and
// cover letter, clients and admins may edit status.
type UpdateProposalRequest struct {
	BidAmount      *float64 `json:"bidAmount" binding:"omitempty,gt=0"`
	HourlyRate     *float64 `json:"hourlyRate" binding:"omitempty,gt=0"`
	EstimatedHours *int     `json:"estimatedHours" binding:"omitempty,gt=0"`
	CoverLetter    *string  `json:"coverLetter"`
	Status         *string  `json:"status" binding:"omitempty,oneof=submitted shortlisted withdrawn"`
}

// ProposalFilter narrows the proposal listing.
type ProposalFilter struct {
	Pagination
	ProjectID string `form:"project_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=submitted shortlisted accepted rejected withdrawn"`
}

// AcceptProposalResult pairs the accepted proposal with the contract the
// acceptance created.
type AcceptProposalResult struct {
	Proposal models.Proposal `json:"proposal"`
	Contract models.Contract `json:"contract"`
}
