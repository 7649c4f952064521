package v1

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gigmarket/api/config"
	"github.com/gigmarket/api/repositories"
	"github.com/gigmarket/api/services"
)

// RegisterRoutes wires repositories, services and controllers onto the v1
// route group. The database handle and config are passed in explicitly;
// nothing here reaches for globals.
func RegisterRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	proposalRepo := repositories.NewProposalRepository(db)
	contractRepo := repositories.NewContractRepository(db)
	milestoneRepo := repositories.NewMilestoneRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	messageRepo := repositories.NewMessageRepository(db)

	authService := services.NewAuthService(userRepo, tokenRepo, cfg)
	userService := services.NewUserService(userRepo, tokenRepo)
	projectService := services.NewProjectService(projectRepo, proposalRepo)
	proposalService := services.NewProposalService(db, proposalRepo, projectRepo)
	contractService := services.NewContractService(db, contractRepo)
	milestoneService := services.NewMilestoneService(db, milestoneRepo, contractRepo)
	reviewService := services.NewReviewService(reviewRepo, contractRepo)
	messageService := services.NewMessageService(messageRepo, contractRepo)

	router.GET("/health", NewHealthController(db).HealthCheck)

	NewAuthController(authService).RegisterRoutes(router)
	NewUserController(userService, authService).RegisterRoutes(router)
	NewProjectController(projectService, authService).RegisterRoutes(router)
	NewProposalController(proposalService, authService).RegisterRoutes(router)
	NewContractController(contractService, milestoneService, messageService, authService).RegisterRoutes(router)
	NewReviewController(reviewService, authService).RegisterRoutes(router)
}
