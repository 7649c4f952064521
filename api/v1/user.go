package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/middleware"
	"github.com/gigmarket/api/models"
	"github.com/gigmarket/api/services"
)

// UserController handles user account and profile endpoints.
type UserController struct {
	userService *services.UserService
	authService *services.AuthService
}

// NewUserController creates a new user controller
func NewUserController(userService *services.UserService, authService *services.AuthService) *UserController {
	return &UserController{userService: userService, authService: authService}
}

// RegisterRoutes registers user routes
func (ctl *UserController) RegisterRoutes(router *gin.RouterGroup) {
	usersGroup := router.Group("/users")
	usersGroup.Use(middleware.AuthMiddleware(ctl.authService))
	{
		usersGroup.GET("", middleware.RequireRole(models.RoleAdmin), ctl.ListUsers)
		usersGroup.GET("/:id", ctl.GetUser)
		usersGroup.PATCH("/:id", ctl.UpdateUser)
		usersGroup.DELETE("/:id", ctl.DeleteUser)
		usersGroup.PUT("/:id/profile", ctl.UpsertProfile)
	}
}

// ListUsers lists accounts. Admin only.
func (ctl *UserController) ListUsers(c *gin.Context) {
	var filter dto.UserFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}

	_, role := caller(c)
	users, count, err := ctl.userService.ListUsers(filter, role)
	if err != nil {
		handleError(c, err)
		return
	}
	okList(c, users, count)
}

// GetUser returns a user's public view.
func (ctl *UserController) GetUser(c *gin.Context) {
	callerID, role := caller(c)
	user, err := ctl.userService.GetUser(c.Param("id"), callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, user)
}

// UpdateUser edits the account. Owner or admin.
func (ctl *UserController) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	callerID, role := caller(c)
	user, err := ctl.userService.UpdateUser(c.Param("id"), req, callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, user)
}

// DeleteUser removes the account. Owner or admin.
func (ctl *UserController) DeleteUser(c *gin.Context) {
	callerID, role := caller(c)
	if err := ctl.userService.DeleteUser(c.Param("id"), callerID, role); err != nil {
		handleError(c, err)
		return
	}
	ok(c, gin.H{"message": "User deleted"})
}

// UpsertProfile creates or replaces the profile. Owner or admin.
func (ctl *UserController) UpsertProfile(c *gin.Context) {
	var req dto.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	callerID, role := caller(c)
	user, err := ctl.userService.UpsertProfile(c.Param("id"), req, callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, user)
}
