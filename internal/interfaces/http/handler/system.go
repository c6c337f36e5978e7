package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemHandler serves health probes
type SystemHandler struct {
	BaseHandler
	db      *gorm.DB
	name    string
	version string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db *gorm.DB, name, version string) *SystemHandler {
	return &SystemHandler{db: db, name: name, version: version}
}

// Health reports process liveness and database reachability
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			status = "degraded"
			dbStatus = "down"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":   status,
		"app":      h.name,
		"version":  h.version,
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}
