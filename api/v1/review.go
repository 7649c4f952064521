package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/middleware"
	"github.com/gigmarket/api/services"
)

// ReviewController handles review endpoints.
type ReviewController struct {
	reviewService *services.ReviewService
	authService   *services.AuthService
}

// NewReviewController creates a new review controller
func NewReviewController(reviewService *services.ReviewService, authService *services.AuthService) *ReviewController {
	return &ReviewController{reviewService: reviewService, authService: authService}
}

// RegisterRoutes registers review routes. Listing is public; creating
// requires auth.
func (ctl *ReviewController) RegisterRoutes(router *gin.RouterGroup) {
	reviewsGroup := router.Group("/reviews")
	{
		reviewsGroup.GET("", ctl.ListReviews)
		reviewsGroup.POST("", middleware.AuthMiddleware(ctl.authService), ctl.CreateReview)
	}
}

// ListReviews lists reviews written about a user.
func (ctl *ReviewController) ListReviews(c *gin.Context) {
	var filter dto.ReviewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}

	reviews, count, err := ctl.reviewService.ListReviews(filter)
	if err != nil {
		handleError(c, err)
		return
	}
	okList(c, reviews, count)
}

// CreateReview leaves feedback on a completed contract.
func (ctl *ReviewController) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	callerID, _ := caller(c)
	review, err := ctl.reviewService.CreateReview(req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}
	created(c, review)
}
