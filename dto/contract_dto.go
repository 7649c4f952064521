package dto

// UpdateContractRequest carries a contract status transition.
type UpdateContractRequest struct {
	Status string `json:"status" binding:"required,oneof=completed terminated"`
}

// ContractFilter narrows the contract listing.
type ContractFilter struct {
	Pagination
	Status    string `form:"status" binding:"omitempty,oneof=active completed terminated"`
	ProjectID string `form:"project_id" binding:"omitempty,uuid"`
}
