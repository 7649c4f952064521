package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/middleware"
	"github.com/gigmarket/api/services"
)

// AuthController handles registration, login and the token lifecycle.
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// RegisterRoutes registers auth routes
func (ctl *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", ctl.Register)
		authGroup.POST("/login", ctl.Login)
		authGroup.POST("/refresh", ctl.Refresh)
		authGroup.POST("/logout", ctl.Logout)
		authGroup.POST("/logout-all", middleware.AuthMiddleware(ctl.authService), ctl.LogoutAll)
		authGroup.GET("/me", middleware.AuthMiddleware(ctl.authService), ctl.Me)
	}
}

// Register handles user registration
func (ctl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := ctl.authService.Register(req)
	if err != nil {
		handleError(c, err)
		return
	}
	created(c, resp)
}

// Login handles user authentication
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := ctl.authService.Login(req)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, resp)
}

// Refresh exchanges a refresh token for a new access token.
func (ctl *AuthController) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := ctl.authService.Refresh(req.RefreshToken)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, resp)
}

// Logout revokes the presented refresh token. Invalid tokens are tolerated
// so a client can always complete a logout.
func (ctl *AuthController) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := ctl.authService.Logout(req.RefreshToken); err != nil {
		handleError(c, err)
		return
	}
	ok(c, gin.H{"message": "Logged out"})
}

// LogoutAll revokes every refresh token of the authenticated user.
func (ctl *AuthController) LogoutAll(c *gin.Context) {
	userID, _ := caller(c)
	if err := ctl.authService.LogoutAll(userID); err != nil {
		handleError(c, err)
		return
	}
	ok(c, gin.H{"message": "Logged out everywhere"})
}

// Me returns the authenticated user's profile.
func (ctl *AuthController) Me(c *gin.Context) {
	userID, _ := caller(c)
	user, err := ctl.authService.CurrentUser(userID)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, user)
}
