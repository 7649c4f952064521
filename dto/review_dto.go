package dto

// CreateReviewRequest leaves feedback on a completed contract.
type CreateReviewRequest struct {
	ContractID string `json:"contractId" binding:"required,uuid"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// ReviewFilter lists reviews about a user.
type ReviewFilter struct {
	Pagination
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

// CreateMessageRequest posts a message on a contract thread.
type CreateMessageRequest struct {
	Body string `json:"body" binding:"required"`
}
