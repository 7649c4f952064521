package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/middleware"
	"github.com/gigmarket/api/services"
)

// ProposalController handles proposal endpoints, including the accept and
// reject actions.
type ProposalController struct {
	proposalService *services.ProposalService
	authService     *services.AuthService
}

// NewProposalController creates a new proposal controller
func NewProposalController(proposalService *services.ProposalService, authService *services.AuthService) *ProposalController {
	return &ProposalController{proposalService: proposalService, authService: authService}
}

// RegisterRoutes registers proposal routes. All require auth.
func (ctl *ProposalController) RegisterRoutes(router *gin.RouterGroup) {
	proposalsGroup := router.Group("/proposals")
	proposalsGroup.Use(middleware.AuthMiddleware(ctl.authService))
	{
		proposalsGroup.GET("", ctl.ListProposals)
		proposalsGroup.POST("", ctl.CreateProposal)
		proposalsGroup.GET("/:id", ctl.GetProposal)
		proposalsGroup.PATCH("/:id", ctl.UpdateProposal)
		proposalsGroup.DELETE("/:id", ctl.DeleteProposal)
		proposalsGroup.POST("/:id/accept", ctl.AcceptProposal)
		proposalsGroup.POST("/:id/reject", ctl.RejectProposal)
	}
}

// ListProposals lists proposals visible to the caller.
func (ctl *ProposalController) ListProposals(c *gin.Context) {
	var filter dto.ProposalFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}

	callerID, role := caller(c)
	proposals, count, err := ctl.proposalService.ListProposals(filter, callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	okList(c, proposals, count)
}

// CreateProposal submits a bid. Freelancers only.
func (ctl *ProposalController) CreateProposal(c *gin.Context) {
	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	callerID, role := caller(c)
	proposal, err := ctl.proposalService.CreateProposal(req, callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	created(c, proposal)
}

// GetProposal returns one proposal for a participant or admin.
func (ctl *ProposalController) GetProposal(c *gin.Context) {
	callerID, role := caller(c)
	proposal, err := ctl.proposalService.GetProposal(c.Param("id"), callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, proposal)
}

// UpdateProposal edits a proposal; behavior depends on the caller's
// relationship to it.
func (ctl *ProposalController) UpdateProposal(c *gin.Context) {
	var req dto.UpdateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	callerID, role := caller(c)
	proposal, err := ctl.proposalService.UpdateProposal(c.Param("id"), req, callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, proposal)
}

// DeleteProposal removes a proposal.
func (ctl *ProposalController) DeleteProposal(c *gin.Context) {
	callerID, role := caller(c)
	if err := ctl.proposalService.DeleteProposal(c.Param("id"), callerID, role); err != nil {
		handleError(c, err)
		return
	}
	ok(c, gin.H{"message": "Proposal deleted"})
}

// AcceptProposal runs the acceptance workflow and returns the accepted
// proposal together with the created contract.
func (ctl *ProposalController) AcceptProposal(c *gin.Context) {
	callerID, role := caller(c)
	result, err := ctl.proposalService.Accept(c.Param("id"), callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, result)
}

// RejectProposal marks a single proposal rejected.
func (ctl *ProposalController) RejectProposal(c *gin.Context) {
	callerID, role := caller(c)
	proposal, err := ctl.proposalService.Reject(c.Param("id"), callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, proposal)
}
