package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubRegistrar struct {
	registered bool
}

func (s *stubRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	s.registered = true
	rg.GET("/items", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("routes registered under versioned prefix", func(t *testing.T) {
		engine := gin.New()
		reg := &stubRegistrar{}

		NewRouter(engine).Register(reg).Setup()
		assert.True(t, reg.registered)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("custom api version", func(t *testing.T) {
		engine := gin.New()

		NewRouter(engine, WithAPIVersion("v2")).Register(&stubRegistrar{}).Setup()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v2/items", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
