package dto

// UpdateUserRequest represents a self-service account edit.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// UpsertProfileRequest creates or replaces the caller's profile.
type UpsertProfileRequest struct {
	Headline   string   `json:"headline" binding:"max=160"`
	Bio        string   `json:"bio"`
	HourlyRate float64  `json:"hourlyRate" binding:"gte=0"`
	Location   string   `json:"location" binding:"max=120"`
	Skills     []string `json:"skills" binding:"max=30,dive,required"`
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Pagination
	Role string `form:"role" binding:"omitempty,oneof=client freelancer admin"`
}
