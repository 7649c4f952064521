package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/models"
	"github.com/gigmarket/api/repositories"
)

// ContractService handles business logic for contracts.
type ContractService struct {
	db           *gorm.DB
	contractRepo *repositories.ContractRepository
}

// NewContractService creates a new contract service instance
func NewContractService(db *gorm.DB, contractRepo *repositories.ContractRepository) *ContractService {
	return &ContractService{db: db, contractRepo: contractRepo}
}

// ListContracts lists contracts the caller participates in; admins see all.
func (s *ContractService) ListContracts(filter dto.ContractFilter, callerID string, callerRole models.Role) ([]models.Contract, int64, error) {
	filter.Normalize()
	return s.contractRepo.FindWithPagination(filter, callerID, callerRole == models.RoleAdmin)
}

// GetContract retrieves a contract with milestones for a participant or an
// admin.
func (s *ContractService) GetContract(id, callerID string, callerRole models.Role) (models.Contract, error) {
	contract, err := s.contractRepo.FindDetail(id)
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

// UpdateContract applies a status transition. Completion marks the project
// completed; termination cancels it. Both contract and project move in one
// transaction.
func (s *ContractService) UpdateContract(id string, req dto.UpdateContractRequest, callerID string, callerRole models.Role) (models.Contract, error) {
	contract, err := s.contractRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Contract{}, ErrNotFound
		}
		return models.Contract{}, err
	}
	if !contract.Participant(callerID) && callerRole != models.RoleAdmin {
		return models.Contract{}, ErrForbidden
	}

	target := models.ContractStatus(req.Status)
	if !contract.Status.CanTransition(target) {
		return models.Contract{}, invalidStateError("illegal contract status transition")
	}

	projectStatus := models.ProjectCompleted
	if target == models.ContractTerminated {
		projectStatus = models.ProjectCancelled
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Contract{}).
			Where("id = ?", contract.ID).
			Updates(map[string]any{"status": target, "end_at": now}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Project{}).
			Where("id = ?", contract.ProjectID).
			Update("status", projectStatus).Error
	})
	if err != nil {
		return models.Contract{}, err
	}

	contract.Status = target
	contract.EndAt = &now
	return contract, nil
}
