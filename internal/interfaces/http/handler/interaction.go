package handler

import (
	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// InteractionHandler handles interaction and reminder HTTP requests
type InteractionHandler struct {
	BaseHandler
	interactionService *crm.InteractionService
}

// NewInteractionHandler creates a new interaction handler
func NewInteractionHandler(interactionService *crm.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

// CreateInteraction records a touch point on a prospect
func (h *InteractionHandler) CreateInteraction(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	prospectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req crm.CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.interactionService.CreateInteraction(c.Request.Context(), principal, prospectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListInteractions returns a prospect's interactions, newest first
func (h *InteractionHandler) ListInteractions(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	prospectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	items, err := h.interactionService.ListInteractions(c.Request.Context(), principal, prospectID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// UpdateInteraction edits an interaction
func (h *InteractionHandler) UpdateInteraction(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req crm.UpdateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.interactionService.UpdateInteraction(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteInteraction removes an interaction
func (h *InteractionHandler) DeleteInteraction(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.interactionService.DeleteInteraction(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateReminder schedules a reminder on a prospect
func (h *InteractionHandler) CreateReminder(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	prospectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req crm.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.interactionService.CreateReminder(c.Request.Context(), principal, prospectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListReminders returns a prospect's reminders by due date
func (h *InteractionHandler) ListReminders(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	prospectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.interactionService.ListReminders(c.Request.Context(), principal, prospectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// UpdateReminder edits a reminder
func (h *InteractionHandler) UpdateReminder(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req crm.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.interactionService.UpdateReminder(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ToggleReminder flips a reminder's completed flag
func (h *InteractionHandler) ToggleReminder(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.interactionService.ToggleReminder(c.Request.Context(), principal, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteReminder removes a reminder
func (h *InteractionHandler) DeleteReminder(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.interactionService.DeleteReminder(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all interaction and reminder routes
func (h *InteractionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prospects := rg.Group("/prospects")
	{
		prospects.GET(":id/interactions", h.ListInteractions)
		prospects.POST(":id/interactions", h.CreateInteraction)
		prospects.GET(":id/reminders", h.ListReminders)
		prospects.POST(":id/reminders", h.CreateReminder)
	}

	interactions := rg.Group("/interactions")
	{
		interactions.PUT(":id", h.UpdateInteraction)
		interactions.DELETE(":id", h.DeleteInteraction)
	}

	reminders := rg.Group("/reminders")
	{
		reminders.PUT(":id", h.UpdateReminder)
		reminders.POST(":id/toggle", h.ToggleReminder)
		reminders.DELETE(":id", h.DeleteReminder)
	}
}
