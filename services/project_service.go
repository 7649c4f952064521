package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/models"
	"github.com/gigmarket/api/repositories"
)

// ProjectService handles business logic for projects.
type ProjectService struct {
	projectRepo  *repositories.ProjectRepository
	proposalRepo *repositories.ProposalRepository
}

// NewProjectService creates a new project service instance
func NewProjectService(projectRepo *repositories.ProjectRepository, proposalRepo *repositories.ProposalRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, proposalRepo: proposalRepo}
}

// ListProjects retrieves projects matching the filter. The listing is
// public; no caller scoping applies.
func (s *ProjectService) ListProjects(filter dto.ProjectFilter) ([]models.Project, int64, error) {
	filter.Normalize()
	return s.projectRepo.FindWithPagination(filter)
}

// GetProject retrieves a project with its client and skills.
func (s *ProjectService) GetProject(id string) (models.Project, error) {
	project, err := s.projectRepo.FindDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	if project.Client != nil {
		project.Client.Password = ""
		project.Client.Email = ""
	}
	return project, nil
}

// CreateProject posts a new project. Only clients and admins may post.
func (s *ProjectService) CreateProject(req dto.CreateProjectRequest, callerID string, callerRole models.Role) (models.Project, error) {
	if callerRole != models.RoleClient && callerRole != models.RoleAdmin {
		return models.Project{}, ErrForbidden
	}
	if req.BudgetMax > 0 && req.BudgetMin > req.BudgetMax {
		return models.Project{}, validationError("budgetMin must not exceed budgetMax")
	}

	skills, err := s.projectRepo.FindOrCreateSkills(req.Skills)
	if err != nil {
		return models.Project{}, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	project := models.Project{
		ClientID:    callerID,
		Title:       req.Title,
		Description: req.Description,
		ProjectType: models.ProjectType(req.ProjectType),
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Currency:    currency,
		Status:      models.ProjectOpen,
		DueAt:       req.DueAt,
		Skills:      skills,
	}
	if err := s.projectRepo.Create(&project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// UpdateProject edits a project. Only the owning client or an admin may
// mutate it, and non-admins only while the project is still open. Status
// changes go through the project state machine.
func (s *ProjectService) UpdateProject(id string, req dto.UpdateProjectRequest, callerID string, callerRole models.Role) (models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}

	isAdmin := callerRole == models.RoleAdmin
	if project.ClientID != callerID && !isAdmin {
		return models.Project{}, ErrForbidden
	}

	hasContentEdit := req.Title != nil || req.Description != nil ||
		req.BudgetMin != nil || req.BudgetMax != nil ||
		req.DueAt != nil || req.Skills != nil
	if !isAdmin && hasContentEdit && project.Status != models.ProjectOpen {
		return models.Project{}, invalidStateError("project can only be edited while open")
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.BudgetMin != nil {
		project.BudgetMin = *req.BudgetMin
	}
	if req.BudgetMax != nil {
		project.BudgetMax = *req.BudgetMax
	}
	if project.BudgetMax > 0 && project.BudgetMin > project.BudgetMax {
		return models.Project{}, validationError("budgetMin must not exceed budgetMax")
	}
	if req.DueAt != nil {
		project.DueAt = req.DueAt
	}
	if req.Status != nil {
		target := models.ProjectStatus(*req.Status)
		if !project.Status.CanTransition(target) {
			return models.Project{}, invalidStateError("illegal project status transition")
		}
		// Awarding happens only through proposal acceptance, and progress
		// after the award is driven by the contract lifecycle. Owners may
		// only cancel.
		if target == models.ProjectAwarded {
			return models.Project{}, invalidStateError("projects are awarded by accepting a proposal")
		}
		if !isAdmin && target != models.ProjectCancelled {
			return models.Project{}, invalidStateError("project status follows its contract; only cancellation is direct")
		}
		project.Status = target
	}

	if err := s.projectRepo.Update(&project); err != nil {
		return models.Project{}, err
	}
	if req.Skills != nil {
		skills, err := s.projectRepo.FindOrCreateSkills(req.Skills)
		if err != nil {
			return models.Project{}, err
		}
		if err := s.projectRepo.ReplaceSkills(&project, skills); err != nil {
			return models.Project{}, err
		}
		project.Skills = skills
	}
	return project, nil
}

// DeleteProject removes a project. Refused while a non-terminated contract
// exists.
func (s *ProjectService) DeleteProject(id, callerID string, callerRole models.Role) error {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if project.ClientID != callerID && callerRole != models.RoleAdmin {
		return ErrForbidden
	}

	hasContract, err := s.projectRepo.HasOpenContract(id)
	if err != nil {
		return err
	}
	if hasContract {
		return invalidStateError("project has an active contract")
	}
	return s.projectRepo.Delete(id)
}

// ListProjectProposals lists proposals on a project for its owner or an
// admin.
func (s *ProjectService) ListProjectProposals(projectID string, pg dto.Pagination, callerID string, callerRole models.Role) ([]models.Proposal, int64, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	if project.ClientID != callerID && callerRole != models.RoleAdmin {
		return nil, 0, ErrForbidden
	}
	pg.Normalize()
	return s.proposalRepo.FindByProject(projectID, pg.Limit, pg.Offset)
}
