package repositories

import (
	"gorm.io/gorm"

	"github.com/gigmarket/api/models"
)

// RefreshTokenRepository handles the server-side refresh token records.
type RefreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository instance
func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create stores an issued refresh token.
func (r *RefreshTokenRepository) Create(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// FindByToken retrieves the record for a presented token string.
func (r *RefreshTokenRepository) FindByToken(token string) (models.RefreshToken, error) {
	var record models.RefreshToken
	result := r.db.First(&record, "token = ?", token)
	return record, result.Error
}

// Revoke marks a single token as revoked.
func (r *RefreshTokenRepository) Revoke(token string) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("token = ?", token).
		Update("revoked", true).Error
}

// RevokeAllForUser marks every token of a user as revoked.
func (r *RefreshTokenRepository) RevokeAllForUser(userID string) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}
