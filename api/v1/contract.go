package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/middleware"
	"github.com/gigmarket/api/services"
)

// ContractController handles contract endpoints plus the milestone and
// message subresources.
type ContractController struct {
	contractService  *services.ContractService
	milestoneService *services.MilestoneService
	messageService   *services.MessageService
	authService      *services.AuthService
}

// NewContractController creates a new contract controller
func NewContractController(
	contractService *services.ContractService,
	milestoneService *services.MilestoneService,
	messageService *services.MessageService,
	authService *services.AuthService,
) *ContractController {
	return &ContractController{
		contractService:  contractService,
		milestoneService: milestoneService,
		messageService:   messageService,
		authService:      authService,
	}
}

// RegisterRoutes registers contract routes. All require auth.
func (ctl *ContractController) RegisterRoutes(router *gin.RouterGroup) {
	contractsGroup := router.Group("/contracts")
	contractsGroup.Use(middleware.AuthMiddleware(ctl.authService))
	{
		contractsGroup.GET("", ctl.ListContracts)
		contractsGroup.GET("/:id", ctl.GetContract)
		contractsGroup.PATCH("/:id", ctl.UpdateContract)
		contractsGroup.GET("/:id/milestones", ctl.ListMilestones)
		contractsGroup.POST("/:id/milestones", ctl.CreateMilestone)
		contractsGroup.GET("/:id/messages", ctl.ListMessages)
		contractsGroup.POST("/:id/messages", ctl.SendMessage)
	}

	milestonesGroup := router.Group("/milestones")
	milestonesGroup.Use(middleware.AuthMiddleware(ctl.authService))
	{
		milestonesGroup.POST("/:id/fund", ctl.FundMilestone)
		milestonesGroup.POST("/:id/submit", ctl.SubmitMilestone)
		milestonesGroup.POST("/:id/release", ctl.ReleaseMilestone)
		milestonesGroup.POST("/:id/dispute", ctl.DisputeMilestone)
	}
}

// ListContracts lists contracts scoped to the caller.
func (ctl *ContractController) ListContracts(c *gin.Context) {
	var filter dto.ContractFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}

	callerID, role := caller(c)
	contracts, count, err := ctl.contractService.ListContracts(filter, callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	okList(c, contracts, count)
}

// GetContract returns one contract with its milestones.
func (ctl *ContractController) GetContract(c *gin.Context) {
	callerID, role := caller(c)
	contract, err := ctl.contractService.GetContract(c.Param("id"), callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, contract)
}

// UpdateContract applies a status transition (complete or terminate).
func (ctl *ContractController) UpdateContract(c *gin.Context) {
	var req dto.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	callerID, role := caller(c)
	contract, err := ctl.contractService.UpdateContract(c.Param("id"), req, callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, contract)
}

// ListMilestones lists a contract's milestones.
func (ctl *ContractController) ListMilestones(c *gin.Context) {
	callerID, role := caller(c)
	milestones, err := ctl.milestoneService.ListMilestones(c.Param("id"), callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, milestones)
}

// CreateMilestone adds a deliverable to a contract.
func (ctl *ContractController) CreateMilestone(c *gin.Context) {
	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	callerID, role := caller(c)
	milestone, err := ctl.milestoneService.CreateMilestone(c.Param("id"), req, callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	created(c, milestone)
}

// FundMilestone moves a milestone to funded and opens the escrow hold.
func (ctl *ContractController) FundMilestone(c *gin.Context) {
	callerID, role := caller(c)
	milestone, err := ctl.milestoneService.Fund(c.Param("id"), callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, milestone)
}

// SubmitMilestone moves a funded milestone into review.
func (ctl *ContractController) SubmitMilestone(c *gin.Context) {
	callerID, role := caller(c)
	milestone, err := ctl.milestoneService.Submit(c.Param("id"), callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, milestone)
}

// ReleaseMilestone releases the escrow and records the payment.
func (ctl *ContractController) ReleaseMilestone(c *gin.Context) {
	callerID, role := caller(c)
	milestone, err := ctl.milestoneService.Release(c.Param("id"), callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, milestone)
}

// DisputeMilestone flags a milestone.
func (ctl *ContractController) DisputeMilestone(c *gin.Context) {
	callerID, role := caller(c)
	milestone, err := ctl.milestoneService.Dispute(c.Param("id"), callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, milestone)
}

// ListMessages returns a contract's message thread.
func (ctl *ContractController) ListMessages(c *gin.Context) {
	var pg dto.Pagination
	if err := c.ShouldBindQuery(&pg); err != nil {
		badRequest(c, err)
		return
	}

	callerID, role := caller(c)
	messages, count, err := ctl.messageService.ListMessages(c.Param("id"), pg, callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	okList(c, messages, count)
}

// SendMessage posts a message on a contract thread.
func (ctl *ContractController) SendMessage(c *gin.Context) {
	var req dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	callerID, role := caller(c)
	message, err := ctl.messageService.SendMessage(c.Param("id"), req, callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	created(c, message)
}
