package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProspectHandler handles prospect pipeline HTTP requests
type ProspectHandler struct {
	BaseHandler
	prospectService *crm.ProspectService
	exportService   *crm.ExportService
}

// NewProspectHandler creates a new prospect handler
func NewProspectHandler(prospectService *crm.ProspectService, exportService *crm.ExportService) *ProspectHandler {
	return &ProspectHandler{
		prospectService: prospectService,
		exportService:   exportService,
	}
}

// Create godoc
// @Summary      Create a prospect
// @Tags         prospects
// @Accept       json
// @Produce      json
// @Param        request body crm.CreateProspectRequest true "Prospect"
// @Success      201 {object} dto.Response{data=crm.ProspectResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /prospects [post]
func (h *ProspectHandler) Create(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var req crm.CreateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.prospectService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns one prospect
func (h *ProspectHandler) Get(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.prospectService.GetByID(c.Request.Context(), principal, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary      List prospects
// @Tags         prospects
// @Produce      json
// @Param        state query string false "Pipeline state filter"
// @Param        q query string false "Search over name, email and company"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]crm.ProspectResponse}
// @Router       /prospects [get]
func (h *ProspectHandler) List(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	var query crm.ProspectListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	items, meta, err := h.prospectService.List(c.Request.Context(), principal, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"meta":    meta,
	})
}

// Update edits a prospect
func (h *ProspectHandler) Update(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req crm.UpdateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.prospectService.Update(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ChangeState moves a prospect along the pipeline
func (h *ProspectHandler) ChangeState(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req crm.ChangeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.prospectService.ChangeState(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Assign changes a prospect's owner. Admin only.
func (h *ProspectHandler) Assign(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req crm.AssignProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.prospectService.Assign(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a prospect and everything hanging off it
func (h *ProspectHandler) Delete(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.prospectService.Delete(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListTags returns every tag, alphabetically
func (h *ProspectHandler) ListTags(c *gin.Context) {
	tags, err := h.prospectService.ListTags(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tags)
}

// Export streams the prospect workbook as an Excel download
func (h *ProspectHandler) Export(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	buf, err := h.exportService.ProspectsWorkbook(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("prospects-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// RegisterRoutes registers all prospect routes
func (h *ProspectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prospects := rg.Group("/prospects")
	{
		prospects.GET("", h.List)
		prospects.POST("", h.Create)
		prospects.GET("/export", h.Export)
		prospects.GET(":id", h.Get)
		prospects.PUT(":id", h.Update)
		prospects.DELETE(":id", h.Delete)
		prospects.POST(":id/state", h.ChangeState)
		prospects.POST(":id/assign", h.Assign)
	}
	rg.GET("/tags", h.ListTags)
}
