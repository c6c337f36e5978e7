package handler

import (
	"github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the home screen summary and the reminder
// calendar feed
type DashboardHandler struct {
	BaseHandler
	dashboardService *crm.DashboardService
	calendarService  *crm.CalendarService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *crm.DashboardService, calendarService *crm.CalendarService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		calendarService:  calendarService,
	}
}

// Summary returns pipeline counts, top workers, inactive prospects and
// reminder panels scoped to the principal
func (h *DashboardHandler) Summary(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.dashboardService.Summary(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Events returns the reminder calendar feed
func (h *DashboardHandler) Events(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}

	events, err := h.calendarService.Events(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, events)
}

// RegisterRoutes registers dashboard and calendar routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Summary)
	rg.GET("/calendar/events", h.Events)
}
