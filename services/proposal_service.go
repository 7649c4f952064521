package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/models"
	"github.com/gigmarket/api/repositories"
)

// ProposalService handles business logic for proposals, including the
// acceptance workflow that awards a project and materializes a contract.
type ProposalService struct {
	db           *gorm.DB
	proposalRepo *repositories.ProposalRepository
	projectRepo  *repositories.ProjectRepository
}

// NewProposalService creates a new proposal service instance
func NewProposalService(db *gorm.DB, proposalRepo *repositories.ProposalRepository, projectRepo *repositories.ProjectRepository) *ProposalService {
	return &ProposalService{db: db, proposalRepo: proposalRepo, projectRepo: projectRepo}
}

// ListProposals lists proposals visible to the caller.
func (s *ProposalService) ListProposals(filter dto.ProposalFilter, callerID string, callerRole models.Role) ([]models.Proposal, int64, error) {
	filter.Normalize()
	return s.proposalRepo.FindWithPagination(filter, callerID, callerRole)
}

// GetProposal retrieves a proposal for one of its participants or an admin.
func (s *ProposalService) GetProposal(id, callerID string, callerRole models.Role) (models.Proposal, error) {
	proposal, err := s.proposalRepo.FindDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Proposal{}, ErrNotFound
		}
		return models.Proposal{}, err
	}

	allowed := callerRole == models.RoleAdmin ||
		proposal.FreelancerID == callerID ||
		(proposal.Project != nil && proposal.Project.ClientID == callerID)
	if !allowed {
		return models.Proposal{}, ErrForbidden
	}

	if proposal.Freelancer != nil {
		proposal.Freelancer.Password = ""
		proposal.Freelancer.Email = ""
	}
	return proposal, nil
}

// CreateProposal submits a bid on an open project. Only freelancers bid, at
// most once per project, with pricing fields matching the project type.
func (s *ProposalService) CreateProposal(req dto.CreateProposalRequest, callerID string, callerRole models.Role) (models.Proposal, error) {
	if callerRole != models.RoleFreelancer {
		return models.Proposal{}, ErrForbidden
	}

	project, err := s.projectRepo.FindByID(req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Proposal{}, ErrNotFound
		}
		return models.Proposal{}, err
	}
	if project.Status != models.ProjectOpen {
		return models.Proposal{}, ErrProjectNotOpen
	}

	if err := validateProposalPricing(project.ProjectType, req.BidAmount, req.HourlyRate, req.EstimatedHours); err != nil {
		return models.Proposal{}, err
	}

	exists, err := s.proposalRepo.ExistsForFreelancer(req.ProjectID, callerID)
	if err != nil {
		return models.Proposal{}, err
	}
	if exists {
		return models.Proposal{}, ErrDuplicateProposal
	}

	proposal := models.Proposal{
		ProjectID:      req.ProjectID,
		FreelancerID:   callerID,
		BidAmount:      req.BidAmount,
		HourlyRate:     req.HourlyRate,
		EstimatedHours: req.EstimatedHours,
		CoverLetter:    req.CoverLetter,
		Status:         models.ProposalSubmitted,
	}
	if err := s.proposalRepo.Create(&proposal); err != nil {
		// The unique (project, freelancer) index backstops the existence
		// check under concurrent submissions.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Proposal{}, ErrDuplicateProposal
		}
		return models.Proposal{}, err
	}
	return proposal, nil
}

// UpdateProposal is dispatched by the caller's relationship to the
// proposal: the owning freelancer edits bid fields or withdraws, the
// project's client (or an admin) moves it between submitted and
// shortlisted.
func (s *ProposalService) UpdateProposal(id string, req dto.UpdateProposalRequest, callerID string, callerRole models.Role) (models.Proposal, error) {
	proposal, err := s.proposalRepo.FindDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Proposal{}, ErrNotFound
		}
		return models.Proposal{}, err
	}
	if proposal.Project == nil {
		return models.Proposal{}, ErrNotFound
	}

	switch {
	case proposal.FreelancerID == callerID:
		return s.editBid(proposal, req)
	case proposal.Project.ClientID == callerID || callerRole == models.RoleAdmin:
		return s.editStatus(proposal, req)
	default:
		return models.Proposal{}, ErrForbidden
	}
}

// editBid lets the owning freelancer revise pricing and cover letter while
// the proposal is still pending, or withdraw it.
func (s *ProposalService) editBid(proposal models.Proposal, req dto.UpdateProposalRequest) (models.Proposal, error) {
	// Detach preloaded associations so Save only touches the proposal row.
	projectType := proposal.Project.ProjectType
	proposal.Project = nil
	proposal.Freelancer = nil

	if req.Status != nil {
		target := models.ProposalStatus(*req.Status)
		if target != models.ProposalWithdrawn {
			return models.Proposal{}, ErrForbidden
		}
		if !proposal.Status.CanTransition(target) {
			return models.Proposal{}, ErrProposalDecided
		}
		proposal.Status = target
		if err := s.proposalRepo.Update(&proposal); err != nil {
			return models.Proposal{}, err
		}
		return proposal, nil
	}

	if proposal.Status != models.ProposalSubmitted && proposal.Status != models.ProposalShortlisted {
		return models.Proposal{}, ErrProposalDecided
	}

	if req.BidAmount != nil {
		proposal.BidAmount = req.BidAmount
	}
	if req.HourlyRate != nil {
		proposal.HourlyRate = req.HourlyRate
	}
	if req.EstimatedHours != nil {
		proposal.EstimatedHours = req.EstimatedHours
	}
	if req.CoverLetter != nil {
		proposal.CoverLetter = *req.CoverLetter
	}
	if err := validateProposalPricing(projectType, proposal.BidAmount, proposal.HourlyRate, proposal.EstimatedHours); err != nil {
		return models.Proposal{}, err
	}
	if err := s.proposalRepo.Update(&proposal); err != nil {
		return models.Proposal{}, err
	}
	return proposal, nil
}

// editStatus lets the client or an admin move a pending proposal between
// submitted and shortlisted. Accept/reject have their own endpoints.
func (s *ProposalService) editStatus(proposal models.Proposal, req dto.UpdateProposalRequest) (models.Proposal, error) {
	proposal.Project = nil
	proposal.Freelancer = nil

	if req.Status == nil {
		return models.Proposal{}, validationError("status is required")
	}
	target := models.ProposalStatus(*req.Status)
	if target != models.ProposalSubmitted && target != models.ProposalShortlisted {
		return models.Proposal{}, validationError("clients may only move proposals between submitted and shortlisted")
	}
	if !proposal.Status.CanTransition(target) {
		return models.Proposal{}, ErrProposalDecided
	}
	proposal.Status = target
	if err := s.proposalRepo.Update(&proposal); err != nil {
		return models.Proposal{}, err
	}
	return proposal, nil
}

// DeleteProposal removes a proposal. The owning freelancer may delete a
// pending one; admins may delete any.
func (s *ProposalService) DeleteProposal(id, callerID string, callerRole models.Role) error {
	proposal, err := s.proposalRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if callerRole != models.RoleAdmin {
		if proposal.FreelancerID != callerID {
			return ErrForbidden
		}
		if proposal.Status == models.ProposalAccepted {
			return invalidStateError("accepted proposals cannot be deleted")
		}
	}
	return s.proposalRepo.Delete(id)
}

// Accept transitions the proposal to accepted, rejects competing pending
// proposals, awards the project and creates the contract, all inside one
// transaction. The project's open status is re-verified inside the
// transaction with a compare-and-swap so two concurrent accepts cannot both
// award the same project.
func (s *ProposalService) Accept(id, callerID string, callerRole models.Role) (*dto.AcceptProposalResult, error) {
	proposal, err := s.proposalRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	project, err := s.projectRepo.FindByID(proposal.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != callerID && callerRole != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if !proposal.Status.CanTransition(models.ProposalAccepted) {
		return nil, ErrProposalDecided
	}
	if project.Status != models.ProjectOpen {
		return nil, ErrProjectNotOpen
	}

	contract, err := buildContract(project, proposal)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Proposal{}).
			Where("id = ?", proposal.ID).
			Update("status", models.ProposalAccepted).Error; err != nil {
			return err
		}

		// Bulk-reject the competing pending proposals; rejected and
		// withdrawn ones stay as they are.
		if err := tx.Model(&models.Proposal{}).
			Where("project_id = ? AND id <> ? AND status IN ?",
				project.ID, proposal.ID,
				[]models.ProposalStatus{models.ProposalSubmitted, models.ProposalShortlisted}).
			Update("status", models.ProposalRejected).Error; err != nil {
			return err
		}

		// Compare-and-swap on the open status closes the double-accept
		// race: a concurrent accept that committed first leaves zero rows
		// for this update.
		res := tx.Model(&models.Project{}).
			Where("id = ? AND status = ?", project.ID, models.ProjectOpen).
			Update("status", models.ProjectAwarded)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProjectNotOpen
		}

		return tx.Create(contract).Error
	})
	if err != nil {
		return nil, err
	}

	accepted, err := s.proposalRepo.FindByID(proposal.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AcceptProposalResult{Proposal: accepted, Contract: *contract}, nil
}

// Reject marks a single proposal rejected. No side effects on the project
// or sibling proposals; re-rejecting a rejected proposal is a no-op.
func (s *ProposalService) Reject(id, callerID string, callerRole models.Role) (models.Proposal, error) {
	proposal, err := s.proposalRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Proposal{}, ErrNotFound
		}
		return models.Proposal{}, err
	}

	project, err := s.projectRepo.FindByID(proposal.ProjectID)
	if err != nil {
		return models.Proposal{}, err
	}
	if project.ClientID != callerID && callerRole != models.RoleAdmin {
		return models.Proposal{}, ErrForbidden
	}

	if proposal.Status == models.ProposalRejected {
		return proposal, nil
	}
	if !proposal.Status.CanTransition(models.ProposalRejected) {
		return models.Proposal{}, ErrProposalDecided
	}

	proposal.Status = models.ProposalRejected
	if err := s.proposalRepo.Update(&proposal); err != nil {
		return models.Proposal{}, err
	}
	return proposal, nil
}

// buildContract derives the contract from the project's type and the
// accepted proposal's pricing. Exactly one pricing field is carried over.
func buildContract(project models.Project, proposal models.Proposal) (*models.Contract, error) {
	contract := &models.Contract{
		ProjectID:    project.ID,
		ProposalID:   proposal.ID,
		ClientID:     project.ClientID,
		FreelancerID: proposal.FreelancerID,
		ContractType: models.ContractType(project.ProjectType),
		Status:       models.ContractActive,
		Currency:     project.Currency,
	}

	switch project.ProjectType {
	case models.ProjectTypeFixed:
		if proposal.BidAmount == nil {
			return nil, validationError("proposal has no bid amount for a fixed-price project")
		}
		contract.AgreedAmount = proposal.BidAmount
	case models.ProjectTypeHourly:
		if proposal.HourlyRate == nil {
			return nil, validationError("proposal has no hourly rate for an hourly project")
		}
		contract.HourlyRate = proposal.HourlyRate
	default:
		return nil, validationError("unknown project type")
	}
	return contract, nil
}

// validateProposalPricing enforces that the pricing fields match the
// project type: bid amount for fixed, hourly rate plus estimate for hourly.
func validateProposalPricing(projectType models.ProjectType, bidAmount, hourlyRate *float64, estimatedHours *int) error {
	switch projectType {
	case models.ProjectTypeFixed:
		if bidAmount == nil {
			return validationError("bidAmount is required for fixed-price projects")
		}
		if hourlyRate != nil || estimatedHours != nil {
			return validationError("hourly fields are not allowed on fixed-price projects")
		}
	case models.ProjectTypeHourly:
		if hourlyRate == nil || estimatedHours == nil {
			return validationError("hourlyRate and estimatedHours are required for hourly projects")
		}
		if bidAmount != nil {
			return validationError("bidAmount is not allowed on hourly projects")
		}
	}
	return nil
}
