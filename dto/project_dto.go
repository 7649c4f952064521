package dto

import "time"

// CreateProjectRequest represents a new project posting.
type CreateProjectRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	ProjectType string     `json:"projectType" binding:"required,oneof=fixed hourly"`
	BudgetMin   float64    `json:"budgetMin" binding:"gte=0"`
	BudgetMax   float64    `json:"budgetMax" binding:"gte=0"`
	Currency    string     `json:"currency" binding:"omitempty,len=3"`
	DueAt       *time.Time `json:"dueAt"`
	Skills      []string   `json:"skills" binding:"max=30,dive,required"`
}

// UpdateProjectRequest represents a partial project edit. Nil fields are
// left untouched.
type UpdateProjectRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=200"`
	Description *string    `json:"description"`
	BudgetMin   *float64   `json:"budgetMin" binding:"omitempty,gte=0"`
	BudgetMax   *float64   `json:"budgetMax" binding:"omitempty,gte=0"`
	DueAt       *time.Time `json:"dueAt"`
	Status      *string    `json:"status" binding:"omitempty,oneof=open awarded in_progress completed cancelled"`
	Skills      []string   `json:"skills" binding:"omitempty,max=30,dive,required"`
}

// ProjectFilter narrows the project listing.
type ProjectFilter struct {
	Pagination
	Status      string  `form:"status" binding:"omitempty,oneof=open awarded in_progress completed cancelled"`
	ProjectType string  `form:"project_type" binding:"omitempty,oneof=fixed hourly"`
	MinBudget   float64 `form:"min_budget"`
	MaxBudget   float64 `form:"max_budget"`
	Skill       string  `form:"skill"`
	ClientID    string  `form:"client_id"`
	Search      string  `form:"search"`
}
