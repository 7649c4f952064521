package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/models"
)

// RequireRole ensures the authenticated user carries one of the given
// roles. Must run after AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error("Authentication required"))
			return
		}

		role, ok := value.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error("Authentication required"))
			return
		}

		for _, allowed := range roles {
			if models.Role(role) == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, dto.Error("Insufficient privileges"))
	}
}
