package repositories

import (
	"gorm.io/gorm"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/models"
)

// ProposalRepository handles database operations for proposals.
type ProposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository creates a new proposal repository instance
func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// FindByID retrieves a proposal by its ID.
func (r *ProposalRepository) FindByID(id string) (models.Proposal, error) {
	var proposal models.Proposal
	result := r.db.First(&proposal, "id = ?", id)
	return proposal, result.Error
}

// FindDetail retrieves a proposal with its project and freelancer preloaded.
func (r *ProposalRepository) FindDetail(id string) (models.Proposal, error) {
	var proposal models.Proposal
	result := r.db.Preload("Project").Preload("Freelancer").First(&proposal, "id = ?", id)
	return proposal, result.Error
}

// ExistsForFreelancer checks whether the freelancer already bid on the
// project.
func (r *ProposalRepository) ExistsForFreelancer(projectID, freelancerID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Proposal{}).
		Where("project_id = ? AND freelancer_id = ?", projectID, freelancerID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a new proposal.
func (r *ProposalRepository) Create(proposal *models.Proposal) error {
	return r.db.Create(proposal).Error
}

// Update persists changes to a proposal.
func (r *ProposalRepository) Update(proposal *models.Proposal) error {
	return r.db.Save(proposal).Error
}

// Delete removes a proposal.
func (r *ProposalRepository) Delete(id string) error {
	return r.db.Delete(&models.Proposal{}, "id = ?", id).Error
}

// FindWithPagination retrieves proposals matching the filter, scoped to what
// the caller may see. Freelancers see their own proposals; clients see
// proposals on their projects; admins see everything.
func (r *ProposalRepository) FindWithPagination(filter dto.ProposalFilter, callerID string, role models.Role) ([]models.Proposal, int64, error) {
	var proposals []models.Proposal
	var totalCount int64

	db := r.db.Model(&models.Proposal{})

	switch role {
	case models.RoleFreelancer:
		db = db.Where("freelancer_id = ?", callerID)
	case models.RoleClient:
		db = db.Where("project_id IN (?)",
			r.db.Model(&models.Project{}).Select("id").Where("client_id = ?", callerID))
	}

	if filter.ProjectID != "" {
		db = db.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("submitted_at desc").Limit(filter.Limit).Offset(filter.Offset).Find(&proposals).Error
	return proposals, totalCount, err
}

// FindByProject lists all proposals on a project.
func (r *ProposalRepository) FindByProject(projectID string, limit, offset int) ([]models.Proposal, int64, error) {
	var proposals []models.Proposal
	var totalCount int64

	db := r.db.Model(&models.Proposal{}).Where("project_id = ?", projectID)
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Freelancer").Order("submitted_at desc").
		Limit(limit).Offset(offset).Find(&proposals).Error
	return proposals, totalCount, err
}
