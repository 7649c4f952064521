package repositories

import (
	"gorm.io/gorm"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/models"
)

// ContractRepository handles database operations for contracts.
type ContractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository instance
func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// FindByID retrieves a contract by its ID.
func (r *ContractRepository) FindByID(id string) (models.Contract, error) {
	var contract models.Contract
	result := r.db.First(&contract, "id = ?", id)
	return contract, result.Error
}

// FindDetail retrieves a contract with milestones preloaded.
func (r *ContractRepository) FindDetail(id string) (models.Contract, error) {
	var contract models.Contract
	result := r.db.Preload("Milestones").Preload("Milestones.Escrow").First(&contract, "id = ?", id)
	return contract, result.Error
}

// Update persists changes to a contract.
func (r *ContractRepository) Update(contract *models.Contract) error {
	return r.db.Save(contract).Error
}

// FindWithPagination retrieves contracts matching the filter, scoped to the
// caller unless they are an admin.
func (r *ContractRepository) FindWithPagination(filter dto.ContractFilter, callerID string, isAdmin bool) ([]models.Contract, int64, error) {
	var contracts []models.Contract
	var totalCount int64

	db := r.db.Model(&models.Contract{})
	if !isAdmin {
		db = db.Where("client_id = ? OR freelancer_id = ?", callerID, callerID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.ProjectID != "" {
		db = db.Where("project_id = ?", filter.ProjectID)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at desc").Limit(filter.Limit).Offset(filter.Offset).Find(&contracts).Error
	return contracts, totalCount, err
}
