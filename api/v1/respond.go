package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/middleware"
	"github.com/gigmarket/api/models"
	"github.com/gigmarket/api/services"
)

// caller extracts the authenticated identity stored by the auth middleware.
func caller(c *gin.Context) (string, models.Role) {
	userID, _ := c.Get(middleware.ContextUserID)
	role, _ := c.Get(middleware.ContextRole)
	id, _ := userID.(string)
	roleStr, _ := role.(string)
	return id, models.Role(roleStr)
}

// handleError maps service errors to HTTP statuses. Unknown errors become a
// generic 500; the real cause is attached to the gin context for the
// request logger.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Error("Resource not found"))
	case errors.Is(err, services.ErrUnauthorized),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidRefreshToken):
		c.JSON(http.StatusUnauthorized, dto.Error(err.Error()))
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.Error("Access denied"))
	case errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrDuplicateProposal),
		errors.Is(err, services.ErrDuplicateReview):
		c.JSON(http.StatusConflict, dto.Error(err.Error()))
	// Constraint violations that slipped past the service-level checks,
	// e.g. two concurrent inserts racing a uniqueness check.
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, dto.Error("Resource already exists"))
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		c.JSON(http.StatusBadRequest, dto.Error("Referenced resource does not exist"))
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrProjectNotOpen),
		errors.Is(err, services.ErrProposalDecided):
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.Error("Internal server error"))
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.Error("Invalid request: "+err.Error()))
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.OK(data))
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.OK(data))
}

func okList(c *gin.Context, data any, count int64) {
	c.JSON(http.StatusOK, dto.OKList(data, count))
}
