package handler

import (
	projectapp "github.com/crm/backend/internal/application/project"
	"github.com/gin-gonic/gin"
)

// WorkspaceHandler handles project deliverable, team and note HTTP
// requests
type WorkspaceHandler struct {
	BaseHandler
	workspaceService *projectapp.WorkspaceService
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService *projectapp.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// CreateDeliverable adds a deliverable to a project
func (h *WorkspaceHandler) CreateDeliverable(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	projectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.CreateDeliverableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.workspaceService.CreateDeliverable(c.Request.Context(), principal, projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListDeliverables returns a project's deliverables by due date
func (h *WorkspaceHandler) ListDeliverables(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	projectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.workspaceService.ListDeliverables(c.Request.Context(), principal, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// UpdateDeliverable edits a deliverable
func (h *WorkspaceHandler) UpdateDeliverable(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.UpdateDeliverableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.workspaceService.UpdateDeliverable(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteDeliverable removes a deliverable
func (h *WorkspaceHandler) DeleteDeliverable(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workspaceService.DeleteDeliverable(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddTeamMember assigns a worker to the project team
func (h *WorkspaceHandler) AddTeamMember(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	projectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.workspaceService.AddTeamMember(c.Request.Context(), principal, projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListTeam returns the project team in join order
func (h *WorkspaceHandler) ListTeam(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	projectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.workspaceService.ListTeam(c.Request.Context(), principal, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// UpdateTeamMember changes a member's role label
func (h *WorkspaceHandler) UpdateTeamMember(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.workspaceService.UpdateTeamMember(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveTeamMember takes a worker off the project team
func (h *WorkspaceHandler) RemoveTeamMember(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workspaceService.RemoveTeamMember(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateNote adds a follow-up note to a project
func (h *WorkspaceHandler) CreateNote(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	projectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.workspaceService.CreateNote(c.Request.Context(), principal, projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListNotes returns a project's notes, newest first
func (h *WorkspaceHandler) ListNotes(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	projectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.workspaceService.ListNotes(c.Request.Context(), principal, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// UpdateNote edits a note
func (h *WorkspaceHandler) UpdateNote(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.workspaceService.UpdateNote(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteNote removes a note
func (h *WorkspaceHandler) DeleteNote(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workspaceService.DeleteNote(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all workspace routes
func (h *WorkspaceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.GET(":id/deliverables", h.ListDeliverables)
		projects.POST(":id/deliverables", h.CreateDeliverable)
		projects.GET(":id/team", h.ListTeam)
		projects.POST(":id/team", h.AddTeamMember)
		projects.GET(":id/notes", h.ListNotes)
		projects.POST(":id/notes", h.CreateNote)
	}

	deliverables := rg.Group("/deliverables")
	{
		deliverables.PUT(":id", h.UpdateDeliverable)
		deliverables.DELETE(":id", h.DeleteDeliverable)
	}

	team := rg.Group("/team-members")
	{
		team.PUT(":id", h.UpdateTeamMember)
		team.DELETE(":id", h.RemoveTeamMember)
	}

	notes := rg.Group("/notes")
	{
		notes.PUT(":id", h.UpdateNote)
		notes.DELETE(":id", h.DeleteNote)
	}
}
