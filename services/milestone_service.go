package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/models"
	"github.com/gigmarket/api/repositories"
)

// MilestoneService handles milestones and the escrow/payment flow attached
// to them.
type MilestoneService struct {
	db            *gorm.DB
	milestoneRepo *repositories.MilestoneRepository
	contractRepo  *repositories.ContractRepository
}

// NewMilestoneService creates a new milestone service instance
func NewMilestoneService(db *gorm.DB, milestoneRepo *repositories.MilestoneRepository, contractRepo *repositories.ContractRepository) *MilestoneService {
	return &MilestoneService{db: db, milestoneRepo: milestoneRepo, contractRepo: contractRepo}
}

// ListMilestones lists a contract's milestones for a participant or admin.
func (s *MilestoneService) ListMilestones(contractID, callerID string, callerRole models.Role) ([]models.Milestone, error) {
	if _, err := s.participantContract(contractID, callerID, callerRole); err != nil {
		return nil, err
	}
	return s.milestoneRepo.FindByContract(contractID)
}

// CreateMilestone adds a deliverable to an active contract. Only the client
// side (or an admin) defines milestones.
func (s *MilestoneService) CreateMilestone(contractID string, req dto.CreateMilestoneRequest, callerID string, callerRole models.Role) (models.Milestone, error) {
	contract, err := s.participantContract(contractID, callerID, callerRole)
	if err != nil {
		return models.Milestone{}, err
	}
	if contract.ClientID != callerID && callerRole != models.RoleAdmin {
		return models.Milestone{}, ErrForbidden
	}
	if contract.Status != models.ContractActive {
		return models.Milestone{}, invalidStateError("milestones can only be added to active contracts")
	}

	milestone := models.Milestone{
		ContractID:  contractID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Status:      models.MilestonePending,
		DueAt:       req.DueAt,
	}
	if err := s.milestoneRepo.Create(&milestone); err != nil {
		return models.Milestone{}, err
	}
	return milestone, nil
}

// Fund moves a pending milestone to funded and opens the escrow hold, both
// in one transaction.
func (s *MilestoneService) Fund(milestoneID, callerID string, callerRole models.Role) (models.Milestone, error) {
	milestone, contract, err := s.milestoneWithContract(milestoneID, callerID, callerRole)
	if err != nil {
		return models.Milestone{}, err
	}
	if contract.ClientID != callerID && callerRole != models.RoleAdmin {
		return models.Milestone{}, ErrForbidden
	}
	if !milestone.Status.CanTransition(models.MilestoneFunded) {
		return models.Milestone{}, invalidStateError("milestone cannot be funded in its current state")
	}

	escrow := models.Escrow{
		MilestoneID: milestone.ID,
		Amount:      milestone.Amount,
		Currency:    contract.Currency,
		Status:      models.EscrowHeld,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Milestone{}).
			Where("id = ?", milestone.ID).
			Update("status", models.MilestoneFunded).Error; err != nil {
			return err
		}
		return tx.Create(&escrow).Error
	})
	if err != nil {
		return models.Milestone{}, err
	}

	milestone.Status = models.MilestoneFunded
	milestone.Escrow = &escrow
	return milestone, nil
}

// Submit moves a funded milestone into review. Freelancer side only.
func (s *MilestoneService) Submit(milestoneID, callerID string, callerRole models.Role) (models.Milestone, error) {
	milestone, contract, err := s.milestoneWithContract(milestoneID, callerID, callerRole)
	if err != nil {
		return models.Milestone{}, err
	}
	if contract.FreelancerID != callerID && callerRole != models.RoleAdmin {
		return models.Milestone{}, ErrForbidden
	}
	if !milestone.Status.CanTransition(models.MilestoneInReview) {
		return models.Milestone{}, invalidStateError("milestone cannot be submitted in its current state")
	}

	milestone.Status = models.MilestoneInReview
	if err := s.milestoneRepo.Update(&milestone); err != nil {
		return models.Milestone{}, err
	}
	return milestone, nil
}

// Release approves a milestone under review: the escrow is released and a
// completed payment from client to freelancer is recorded, atomically with
// the milestone transition.
func (s *MilestoneService) Release(milestoneID, callerID string, callerRole models.Role) (models.Milestone, error) {
	milestone, contract, err := s.milestoneWithContract(milestoneID, callerID, callerRole)
	if err != nil {
		return models.Milestone{}, err
	}
	if contract.ClientID != callerID && callerRole != models.RoleAdmin {
		return models.Milestone{}, ErrForbidden
	}
	if !milestone.Status.CanTransition(models.MilestoneReleased) {
		return models.Milestone{}, invalidStateError("milestone cannot be released in its current state")
	}
	if milestone.Escrow == nil || milestone.Escrow.Status != models.EscrowHeld {
		return models.Milestone{}, invalidStateError("milestone has no held escrow")
	}

	now := time.Now()
	payment := models.Payment{
		ContractID:  contract.ID,
		MilestoneID: milestone.ID,
		PayerID:     contract.ClientID,
		PayeeID:     contract.FreelancerID,
		Amount:      milestone.Amount,
		Currency:    contract.Currency,
		Status:      models.PaymentCompleted,
		PaidAt:      &now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Milestone{}).
			Where("id = ?", milestone.ID).
			Update("status", models.MilestoneReleased).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Escrow{}).
			Where("id = ?", milestone.Escrow.ID).
			Updates(map[string]any{"status": models.EscrowReleased, "released_at": now}).Error; err != nil {
			return err
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return models.Milestone{}, err
	}

	return s.milestoneRepo.FindByID(milestone.ID)
}

// Dispute flags a funded or in-review milestone. Either participant may
// raise it.
func (s *MilestoneService) Dispute(milestoneID, callerID string, callerRole models.Role) (models.Milestone, error) {
	milestone, _, err := s.milestoneWithContract(milestoneID, callerID, callerRole)
	if err != nil {
		return models.Milestone{}, err
	}
	if !milestone.Status.CanTransition(models.MilestoneDisputed) {
		return models.Milestone{}, invalidStateError("milestone cannot be disputed in its current state")
	}

	milestone.Status = models.MilestoneDisputed
	if err := s.milestoneRepo.Update(&milestone); err != nil {
		return models.Milestone{}, err
	}
	return milestone, nil
}

func (s *MilestoneService) participantContract(contractID, callerID string, callerRole models.Role) (models.Contract, error) {
	contract, err := s.contractRepo.FindByID(contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Contract{}, ErrNotFound
		}
		return models.Contract{}, err
	}
	if !contract.Participant(callerID) && callerRole != models.RoleAdmin {
		return models.Contract{}, ErrForbidden
	}
	return contract, nil
}

func (s *MilestoneService) milestoneWithContract(milestoneID, callerID string, callerRole models.Role) (models.Milestone, models.Contract, error) {
	milestone, err := s.milestoneRepo.FindByID(milestoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Milestone{}, models.Contract{}, ErrNotFound
		}
		return models.Milestone{}, models.Contract{}, err
	}
	contract, err := s.participantContract(milestone.ContractID, callerID, callerRole)
	if err != nil {
		return models.Milestone{}, models.Contract{}, err
	}
	return milestone, contract, nil
}
