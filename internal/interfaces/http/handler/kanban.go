package handler

import (
	projectapp "github.com/crm/backend/internal/application/project"
	"github.com/gin-gonic/gin"
)

// KanbanHandler handles kanban board HTTP requests
type KanbanHandler struct {
	BaseHandler
	kanbanService *projectapp.KanbanService
}

// NewKanbanHandler creates a new kanban handler
func NewKanbanHandler(kanbanService *projectapp.KanbanService) *KanbanHandler {
	return &KanbanHandler{kanbanService: kanbanService}
}

// Board returns a project's columns with their tasks, both in position
// order
func (h *KanbanHandler) Board(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	projectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	columns, err := h.kanbanService.Board(c.Request.Context(), principal, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, columns)
}

// CreateColumn appends a column to the board
func (h *KanbanHandler) CreateColumn(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	projectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.kanbanService.CreateColumn(c.Request.Context(), principal, projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// UpdateColumn edits a column's title and icon
func (h *KanbanHandler) UpdateColumn(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	columnID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.kanbanService.UpdateColumn(c.Request.Context(), principal, columnID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteColumn removes a column and its tasks
func (h *KanbanHandler) DeleteColumn(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	columnID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.kanbanService.DeleteColumn(c.Request.Context(), principal, columnID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ReorderColumns re-sequences the board. The request must list every
// column of the project exactly once.
func (h *KanbanHandler) ReorderColumns(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	projectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.ReorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.kanbanService.ReorderColumns(c.Request.Context(), principal, projectID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Columns reordered"})
}

// CreateTask appends a task to a column
func (h *KanbanHandler) CreateTask(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	columnID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.kanbanService.CreateTask(c.Request.Context(), principal, columnID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// UpdateTask edits a task's title and description
func (h *KanbanHandler) UpdateTask(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	taskID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.kanbanService.UpdateTask(c.Request.Context(), principal, taskID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MoveTask moves a task to another column, appending when no position
// is given
func (h *KanbanHandler) MoveTask(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	projectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.kanbanService.MoveTask(c.Request.Context(), principal, projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteTask removes a task
func (h *KanbanHandler) DeleteTask(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	taskID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.kanbanService.DeleteTask(c.Request.Context(), principal, taskID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all kanban routes
func (h *KanbanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.GET(":id/kanban", h.Board)
		projects.POST(":id/kanban/columns", h.CreateColumn)
		projects.POST(":id/kanban/reorder", h.ReorderColumns)
		projects.POST(":id/kanban/move", h.MoveTask)
	}

	columns := rg.Group("/kanban/columns")
	{
		columns.PUT(":id", h.UpdateColumn)
		columns.DELETE(":id", h.DeleteColumn)
		columns.POST(":id/tasks", h.CreateTask)
	}

	tasks := rg.Group("/kanban/tasks")
	{
		tasks.PUT(":id", h.UpdateTask)
		tasks.DELETE(":id", h.DeleteTask)
	}
}
