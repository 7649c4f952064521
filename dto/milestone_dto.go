package dto

import "time"

// CreateMilestoneRequest adds a deliverable to a contract.
type CreateMilestoneRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	DueAt       *time.Time `json:"dueAt"`
}
