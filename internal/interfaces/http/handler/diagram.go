package handler

import (
	"fmt"
	"net/http"

	projectapp "github.com/crm/backend/internal/application/project"
	"github.com/gin-gonic/gin"
)

// DiagramHandler handles diagram HTTP requests
type DiagramHandler struct {
	BaseHandler
	diagramService *projectapp.DiagramService
}

// NewDiagramHandler creates a new diagram handler
func NewDiagramHandler(diagramService *projectapp.DiagramService) *DiagramHandler {
	return &DiagramHandler{diagramService: diagramService}
}

// Save creates a diagram, or overwrites one when the payload carries a
// known id
func (h *DiagramHandler) Save(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	projectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.SaveDiagramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.diagramService.Save(c.Request.Context(), principal, projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get returns one diagram with its graph payload
func (h *DiagramHandler) Get(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.diagramService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a project's diagrams, newest first
func (h *DiagramHandler) List(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	projectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.diagramService.List(c.Request.Context(), principal, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// RenderPDF renders the diagram's stored snapshot into a PDF download
func (h *DiagramHandler) RenderPDF(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	pdf, err := h.diagramService.RenderPDF(c.Request.Context(), principal, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "diagram-"+id.String()+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Delete removes a diagram
func (h *DiagramHandler) Delete(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.diagramService.Delete(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all diagram routes
func (h *DiagramHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.GET(":id/diagrams", h.List)
		projects.POST(":id/diagrams", h.Save)
	}

	diagrams := rg.Group("/diagrams")
	{
		diagrams.GET(":id", h.Get)
		diagrams.GET(":id/pdf", h.RenderPDF)
		diagrams.DELETE(":id", h.Delete)
	}
}
