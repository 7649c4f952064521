package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/middleware"
	"github.com/gigmarket/api/services"
)

// ProjectController handles project endpoints.
type ProjectController struct {
	projectService *services.ProjectService
	authService    *services.AuthService
}

// NewProjectController creates a new project controller
func NewProjectController(projectService *services.ProjectService, authService *services.AuthService) *ProjectController {
	return &ProjectController{projectService: projectService, authService: authService}
}

// RegisterRoutes registers project routes. Reads are public; mutations
// require auth.
func (ctl *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projectsGroup := router.Group("/projects")
	{
		projectsGroup.GET("", ctl.ListProjects)
		projectsGroup.GET("/:id", ctl.GetProject)
	}

	authed := router.Group("/projects")
	authed.Use(middleware.AuthMiddleware(ctl.authService))
	{
		authed.POST("", ctl.CreateProject)
		authed.PATCH("/:id", ctl.UpdateProject)
		authed.DELETE("/:id", ctl.DeleteProject)
		authed.GET("/:id/proposals", ctl.ListProjectProposals)
	}
}

// ListProjects lists projects matching the filter.
func (ctl *ProjectController) ListProjects(c *gin.Context) {
	var filter dto.ProjectFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}

	projects, count, err := ctl.projectService.ListProjects(filter)
	if err != nil {
		handleError(c, err)
		return
	}
	okList(c, projects, count)
}

// GetProject returns one project with client and skills.
func (ctl *ProjectController) GetProject(c *gin.Context) {
	project, err := ctl.projectService.GetProject(c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, project)
}

// CreateProject posts a new project. Clients and admins.
func (ctl *ProjectController) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	callerID, role := caller(c)
	project, err := ctl.projectService.CreateProject(req, callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	created(c, project)
}

// UpdateProject edits a project. Owner or admin.
func (ctl *ProjectController) UpdateProject(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	callerID, role := caller(c)
	project, err := ctl.projectService.UpdateProject(c.Param("id"), req, callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, project)
}

// DeleteProject removes a project. Owner or admin, no active contract.
func (ctl *ProjectController) DeleteProject(c *gin.Context) {
	callerID, role := caller(c)
	if err := ctl.projectService.DeleteProject(c.Param("id"), callerID, role); err != nil {
		handleError(c, err)
		return
	}
	ok(c, gin.H{"message": "Project deleted"})
}

// ListProjectProposals lists a project's proposals for its owner or admin.
func (ctl *ProjectController) ListProjectProposals(c *gin.Context) {
	var pg dto.Pagination
	if err := c.ShouldBindQuery(&pg); err != nil {
		badRequest(c, err)
		return
	}

	callerID, role := caller(c)
	proposals, count, err := ctl.projectService.ListProjectProposals(c.Param("id"), pg, callerID, role)
	if err != nil {
		handleError(c, err)
		return
	}
	okList(c, proposals, count)
}
