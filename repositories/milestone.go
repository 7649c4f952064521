package repositories

import (
	"gorm.io/gorm"

	"github.com/gigmarket/api/models"
)

// MilestoneRepository handles database operations for milestones and their
// escrow/payment records.
type MilestoneRepository struct {
	db *gorm.DB
}

// NewMilestoneRepository creates a new milestone repository instance
func NewMilestoneRepository(db *gorm.DB) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

// FindByID retrieves a milestone by its ID.
func (r *MilestoneRepository) FindByID(id string) (models.Milestone, error) {
	var milestone models.Milestone
	result := r.db.Preload("Escrow").First(&milestone, "id = ?", id)
	return milestone, result.Error
}

// Create inserts a new milestone.
func (r *MilestoneRepository) Create(milestone *models.Milestone) error {
	return r.db.Create(milestone).Error
}

// Update persists changes to a milestone.
func (r *MilestoneRepository) Update(milestone *models.Milestone) error {
	return r.db.Save(milestone).Error
}

// FindByContract lists milestones of a contract in due-date order.
func (r *MilestoneRepository) FindByContract(contractID string) ([]models.Milestone, error) {
	var milestones []models.Milestone
	err := r.db.Preload("Escrow").Where("contract_id = ?", contractID).
		Order("created_at asc").Find(&milestones).Error
	return milestones, err
}
