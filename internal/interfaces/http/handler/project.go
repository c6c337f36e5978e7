package handler

import (
	projectapp "github.com/crm/backend/internal/application/project"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ProjectHandler handles project and client HTTP requests
type ProjectHandler struct {
	BaseHandler
	projectService *projectapp.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *projectapp.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// GetOrCreate returns the project attached to a WON prospect, creating
// it on first access
func (h *ProjectHandler) GetOrCreate(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	prospectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.projectService.GetOrCreate(c.Request.Context(), principal, prospectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get returns one project
func (h *ProjectHandler) Get(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.projectService.GetByID(c.Request.Context(), principal, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns projects with pagination
func (h *ProjectHandler) List(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.projectService.List(c.Request.Context(), principal, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListClients returns WON prospects as clients with their project ids
func (h *ProjectHandler) ListClients(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.projectService.ListClients(c.Request.Context(), principal, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update edits a project's planning fields
func (h *ProjectHandler) Update(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.projectService.Update(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a project and its board, diagrams, deliverables, team
// and notes. The prospect survives.
func (h *ProjectHandler) Delete(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all project routes
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/clients", h.ListClients)
	rg.GET("/prospects/:id/project", h.GetOrCreate)

	projects := rg.Group("/projects")
	{
		projects.GET("", h.List)
		projects.GET(":id", h.Get)
		projects.PUT(":id", h.Update)
		projects.DELETE(":id", h.Delete)
	}
}
