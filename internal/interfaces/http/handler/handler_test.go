package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	crmapp "github.com/crm/backend/internal/application/crm"
	projectapp "github.com/crm/backend/internal/application/project"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv wires real services over an in-memory database, with the JWT
// middleware replaced by a principal injector.
type testEnv struct {
	engine    *gin.Engine
	principal identity.Principal
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, persistence.Migrate(db))

	logger := zap.NewNop()

	prospectRepo := persistence.NewGormProspectRepository(db)
	tagRepo := persistence.NewGormTagRepository(db)
	workerRepo := persistence.NewGormWorkerRepository(db)
	linkRepo := persistence.NewGormProspectWorkerRepository(db)
	interactionRepo := persistence.NewGormInteractionRepository(db)
	reminderRepo := persistence.NewGormReminderRepository(db)
	projectRepo := persistence.NewGormProjectRepository(db)
	kanbanRepo := persistence.NewGormKanbanRepository(db)

	prospectService := crmapp.NewProspectService(prospectRepo, tagRepo, linkRepo, logger)
	workerService := crmapp.NewWorkerService(workerRepo, prospectRepo, linkRepo, logger)
	interactionService := crmapp.NewInteractionService(interactionRepo, reminderRepo, prospectRepo, logger)
	projectService := projectapp.NewProjectService(projectRepo, prospectRepo, logger)
	kanbanService := projectapp.NewKanbanService(kanbanRepo, projectRepo, prospectRepo, logger)

	env := &testEnv{
		principal: identity.Principal{UserID: uuid.New(), Username: "admin", Admin: true},
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.PrincipalKey, env.principal)
		c.Next()
	})

	router.NewRouter(engine).
		Register(NewProspectHandler(prospectService, nil)).
		Register(NewWorkerHandler(workerService)).
		Register(NewInteractionHandler(interactionService)).
		Register(NewProjectHandler(projectService)).
		Register(NewKanbanHandler(kanbanService)).
		Setup()

	env.engine = engine
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var envelope map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &envelope)
	}
	return w, envelope
}

func dataField(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok, "expected object data field, got %v", envelope)
	return data
}

func (e *testEnv) createProspect(t *testing.T, name, email string) string {
	t.Helper()
	w, envelope := e.do(t, http.MethodPost, "/api/v1/prospects", gin.H{
		"full_name": name,
		"email":     email,
		"company":   "acme gmbh",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return dataField(t, envelope)["id"].(string)
}

func TestProspectEndpoints(t *testing.T) {
	env := newTestEnv(t)

	t.Run("create and fetch", func(t *testing.T) {
		id := env.createProspect(t, "Ada Lovelace", "Ada@Example.com")

		w, envelope := env.do(t, http.MethodGet, "/api/v1/prospects/"+id, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		data := dataField(t, envelope)
		assert.Equal(t, "ada@example.com", data["email"])
		assert.Equal(t, "NEW", data["state"])
		assert.NotEmpty(t, data["state_color"])
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		env.createProspect(t, "First", "dup@example.com")
		w, envelope := env.do(t, http.MethodPost, "/api/v1/prospects", gin.H{
			"full_name": "Second",
			"email":     "DUP@example.com",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, false, envelope["success"])
	})

	t.Run("list carries state counts", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodGet, "/api/v1/prospects?page=1&page_size=10", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		meta, ok := envelope["meta"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, meta, "state_counts")
	})

	t.Run("state change", func(t *testing.T) {
		id := env.createProspect(t, "Mover", "mover@example.com")
		w, envelope := env.do(t, http.MethodPost, "/api/v1/prospects/"+id+"/state", gin.H{"state": "WON"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "WON", dataField(t, envelope)["state"])
	})

	t.Run("invalid state rejected", func(t *testing.T) {
		id := env.createProspect(t, "Stuck", "stuck@example.com")
		w, _ := env.do(t, http.MethodPost, "/api/v1/prospects/"+id+"/state", gin.H{"state": "BOGUS"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown prospect is 404", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodGet, "/api/v1/prospects/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		errInfo, ok := envelope["error"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "NOT_FOUND", errInfo["code"])
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		w, _ := env.do(t, http.MethodGet, "/api/v1/prospects/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("assign requires admin", func(t *testing.T) {
		id := env.createProspect(t, "Assignee", "assignee@example.com")

		env.principal = identity.Principal{UserID: uuid.New(), Username: "sales", Admin: false}
		defer func() {
			env.principal = identity.Principal{UserID: uuid.New(), Username: "admin", Admin: true}
		}()

		w, _ := env.do(t, http.MethodPost, "/api/v1/prospects/"+id+"/assign", gin.H{"owner_id": nil})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestInteractionEndpoints(t *testing.T) {
	env := newTestEnv(t)
	prospectID := env.createProspect(t, "Talker", "talker@example.com")

	t.Run("record and list", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodPost, "/api/v1/prospects/"+prospectID+"/interactions", gin.H{
			"type":  "CALL",
			"notes": "introductory call",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "CALL", dataField(t, envelope)["type"])

		w, envelope = env.do(t, http.MethodGet, "/api/v1/prospects/"+prospectID+"/interactions", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		items, ok := envelope["data"].([]any)
		require.True(t, ok)
		assert.Len(t, items, 1)
	})

	t.Run("reminder toggle flips completion", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodPost, "/api/v1/prospects/"+prospectID+"/reminders", gin.H{
			"title":  "follow up",
			"due_at": "2026-09-15T10:00:00Z",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		reminderID := dataField(t, envelope)["id"].(string)

		w, envelope = env.do(t, http.MethodPost, "/api/v1/reminders/"+reminderID+"/toggle", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, dataField(t, envelope)["completed"])

		w, envelope = env.do(t, http.MethodPost, "/api/v1/reminders/"+reminderID+"/toggle", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, dataField(t, envelope)["completed"])
	})
}

func TestProjectAndKanbanEndpoints(t *testing.T) {
	env := newTestEnv(t)
	prospectID := env.createProspect(t, "winner co", "winner@example.com")

	t.Run("project requires a won prospect", func(t *testing.T) {
		w, _ := env.do(t, http.MethodGet, "/api/v1/prospects/"+prospectID+"/project", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	w, _ := env.do(t, http.MethodPost, "/api/v1/prospects/"+prospectID+"/state", gin.H{"state": "WON"})
	require.Equal(t, http.StatusOK, w.Code)

	var projectID string
	t.Run("get or create is idempotent", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodGet, "/api/v1/prospects/"+prospectID+"/project", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		projectID = dataField(t, envelope)["id"].(string)
		assert.Equal(t, prospectID, dataField(t, envelope)["prospect_id"])

		w, envelope = env.do(t, http.MethodGet, "/api/v1/prospects/"+prospectID+"/project", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, projectID, dataField(t, envelope)["id"])
	})

	t.Run("kanban board flow", func(t *testing.T) {
		w, envelope := env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/projects/%s/kanban/columns", projectID), gin.H{"title": "Todo"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		firstColumn := dataField(t, envelope)["id"].(string)
		assert.Equal(t, float64(0), dataField(t, envelope)["position"])

		w, envelope = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/projects/%s/kanban/columns", projectID), gin.H{"title": "Done"})
		require.Equal(t, http.StatusCreated, w.Code)
		secondColumn := dataField(t, envelope)["id"].(string)
		assert.Equal(t, float64(1), dataField(t, envelope)["position"])

		w, envelope = env.do(t, http.MethodPost, "/api/v1/kanban/columns/"+firstColumn+"/tasks", gin.H{"title": "write proposal"})
		require.Equal(t, http.StatusCreated, w.Code)
		taskID := dataField(t, envelope)["id"].(string)

		w, envelope = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/projects/%s/kanban/move", projectID), gin.H{
			"task_id":               taskID,
			"destination_column_id": secondColumn,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, secondColumn, dataField(t, envelope)["column_id"])
		assert.Equal(t, float64(0), dataField(t, envelope)["position"])

		w, envelope = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/projects/%s/kanban", projectID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		columns, ok := envelope["data"].([]any)
		require.True(t, ok)
		require.Len(t, columns, 2)

		w, _ = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/projects/%s/kanban/reorder", projectID), gin.H{
			"ordered_ids": []string{secondColumn, firstColumn},
		})
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w, envelope = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/projects/%s/kanban", projectID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		columns = envelope["data"].([]any)
		first := columns[0].(map[string]any)
		assert.Equal(t, secondColumn, first["id"])
	})
}
