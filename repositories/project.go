package repositories

import (
	"gorm.io/gorm"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/models"
)

// ProjectRepository handles database operations for projects.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindByID retrieves a project by its ID.
func (r *ProjectRepository) FindByID(id string) (models.Project, error) {
	var project models.Project
	result := r.db.Preload("Skills").First(&project, "id = ?", id)
	return project, result.Error
}

// FindDetail retrieves a project with its client and skills preloaded.
func (r *ProjectRepository) FindDetail(id string) (models.Project, error) {
	var project models.Project
	result := r.db.Preload("Skills").Preload("Client").First(&project, "id = ?", id)
	return project, result.Error
}

// Create inserts a new project.
func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update persists changes to a project.
func (r *ProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// ReplaceSkills swaps the project's skill associations.
func (r *ProjectRepository) ReplaceSkills(project *models.Project, skills []models.Skill) error {
	return r.db.Model(project).Association("Skills").Replace(skills)
}

// Delete soft-deletes a project.
func (r *ProjectRepository) Delete(id string) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// FindOrCreateSkills resolves skill names to rows, creating missing ones.
func (r *ProjectRepository) FindOrCreateSkills(names []string) ([]models.Skill, error) {
	return findOrCreateSkills(r.db, names)
}

// HasOpenContract reports whether the project has a non-terminated contract.
func (r *ProjectRepository) HasOpenContract(projectID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Contract{}).
		Where("project_id = ? AND status <> ?", projectID, models.ContractTerminated).
		Count(&count).Error
	return count > 0, err
}

// FindWithPagination retrieves projects matching the filter.
func (r *ProjectRepository) FindWithPagination(filter dto.ProjectFilter) ([]models.Project, int64, error) {
	var projects []models.Project
	var totalCount int64

	db := r.db.Model(&models.Project{}).Preload("Skills")

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.ProjectType != "" {
		db = db.Where("project_type = ?", filter.ProjectType)
	}
	if filter.ClientID != "" {
		db = db.Where("client_id = ?", filter.ClientID)
	}
	if filter.MinBudget > 0 {
		db = db.Where("budget_max >= ?", filter.MinBudget)
	}
	if filter.MaxBudget > 0 {
		db = db.Where("budget_min <= ?", filter.MaxBudget)
	}
	if filter.Skill != "" {
		db = db.Joins("JOIN project_skills ps ON ps.project_id = projects.id").
			Joins("JOIN skills ON skills.id = ps.skill_id").
			Where("skills.name = ?", filter.Skill)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("(title LIKE ? OR description LIKE ?)", pattern, pattern)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at desc").Limit(filter.Limit).Offset(filter.Offset).Find(&projects).Error
	return projects, totalCount, err
}
