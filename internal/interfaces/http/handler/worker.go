package handler

import (
	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// WorkerHandler handles worker and prospect-worker link HTTP requests
type WorkerHandler struct {
	BaseHandler
	workerService *crm.WorkerService
}

// NewWorkerHandler creates a new worker handler
func NewWorkerHandler(workerService *crm.WorkerService) *WorkerHandler {
	return &WorkerHandler{workerService: workerService}
}

// Create adds a worker
func (h *WorkerHandler) Create(c *gin.Context) {
	var req crm.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.workerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns one worker
func (h *WorkerHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.workerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns workers with pagination
func (h *WorkerHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	filter := req.ToFilter()

	items, total, err := h.workerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update edits a worker
func (h *WorkerHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req crm.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.workerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a worker along with its prospect links
func (h *WorkerHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// LinkToProspect attaches a worker to a prospect with a rating
func (h *WorkerHandler) LinkToProspect(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	prospectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req crm.LinkWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.workerService.LinkToProspect(c.Request.Context(), principal, prospectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ProspectWorkers lists a prospect's worker links
func (h *WorkerHandler) ProspectWorkers(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	prospectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	links, err := h.workerService.ProspectWorkers(c.Request.Context(), principal, prospectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, links)
}

// UpdateLink changes the rating on a link
func (h *WorkerHandler) UpdateLink(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	linkID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req crm.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.workerService.UpdateLink(c.Request.Context(), principal, linkID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveLink detaches a worker from a prospect
func (h *WorkerHandler) RemoveLink(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	linkID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workerService.RemoveLink(c.Request.Context(), principal, linkID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all worker routes
func (h *WorkerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	workers := rg.Group("/workers")
	{
		workers.GET("", h.List)
		workers.POST("", h.Create)
		workers.GET(":id", h.Get)
		workers.PUT(":id", h.Update)
		workers.DELETE(":id", h.Delete)
	}

	prospects := rg.Group("/prospects")
	{
		prospects.GET(":id/workers", h.ProspectWorkers)
		prospects.POST(":id/workers", h.LinkToProspect)
	}

	links := rg.Group("/worker-links")
	{
		links.PUT(":id", h.UpdateLink)
		links.DELETE(":id", h.RemoveLink)
	}
}
