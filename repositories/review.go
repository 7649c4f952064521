package repositories

import (
	"gorm.io/gorm"

	"github.com/gigmarket/api/models"
)

// ReviewRepository handles database operations for reviews.
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository instance
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review.
func (r *ReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// ExistsForReviewer checks whether the reviewer already reviewed the
// contract.
func (r *ReviewRepository) ExistsForReviewer(contractID, reviewerID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("contract_id = ? AND reviewer_id = ?", contractID, reviewerID).
		Count(&count).Error
	return count > 0, err
}

// FindByReviewee lists reviews written about a user, newest first.
func (r *ReviewRepository) FindByReviewee(revieweeID string, limit, offset int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var totalCount int64

	db := r.db.Model(&models.Review{}).Where("reviewee_id = ?", revieweeID)
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at desc").Limit(limit).Offset(offset).Find(&reviews).Error
	return reviews, totalCount, err
}
