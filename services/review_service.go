package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/models"
	"github.com/gigmarket/api/repositories"
)

// ReviewService handles post-contract feedback.
type ReviewService struct {
	reviewRepo   *repositories.ReviewRepository
	contractRepo *repositories.ContractRepository
}

// NewReviewService creates a new review service instance
func NewReviewService(reviewRepo *repositories.ReviewRepository, contractRepo *repositories.ContractRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, contractRepo: contractRepo}
}

// CreateReview leaves feedback on a completed contract. The reviewee is the
// other party; one review per (contract, reviewer).
func (s *ReviewService) CreateReview(req dto.CreateReviewRequest, callerID string) (models.Review, error) {
	contract, err := s.contractRepo.FindByID(req.ContractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Review{}, ErrNotFound
		}
		return models.Review{}, err
	}
	if !contract.Participant(callerID) {
		return models.Review{}, ErrForbidden
	}
	if contract.Status != models.ContractCompleted {
		return models.Review{}, invalidStateError("only completed contracts can be reviewed")
	}

	exists, err := s.reviewRepo.ExistsForReviewer(req.ContractID, callerID)
	if err != nil {
		return models.Review{}, err
	}
	if exists {
		return models.Review{}, ErrDuplicateReview
	}

	revieweeID := contract.FreelancerID
	if callerID == contract.FreelancerID {
		revieweeID = contract.ClientID
	}

	review := models.Review{
		ContractID: req.ContractID,
		ReviewerID: callerID,
		RevieweeID: revieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviewRepo.Create(&review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Review{}, ErrDuplicateReview
		}
		return models.Review{}, err
	}
	return review, nil
}

// ListReviews lists reviews written about a user. Public.
func (s *ReviewService) ListReviews(filter dto.ReviewFilter) ([]models.Review, int64, error) {
	if filter.UserID == "" {
		return nil, 0, validationError("user_id is required")
	}
	filter.Normalize()
	return s.reviewRepo.FindByReviewee(filter.UserID, filter.Limit, filter.Offset)
}
