package project

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/crm/backend/internal/domain/project"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type diagramFixture struct {
	service     *DiagramService
	diagramRepo *MockDiagramRepository
	renderer    *fakeRenderer
	project     *project.Project
}

func newDiagramFixture(t *testing.T, owner uuid.UUID) *diagramFixture {
	t.Helper()
	prospect := wonProspect(t, owner, "Acme")
	proj, err := project.NewProject(prospect.ID, "Acme")
	require.NoError(t, err)

	diagramRepo := new(MockDiagramRepository)
	projectRepo := new(MockProjectRepository)
	prospectRepo := new(MockProspectRepository)
	renderer := &fakeRenderer{pdf: []byte("%PDF-1.7 fake")}
	projectRepo.On("FindByID", mock.Anything, proj.ID).Return(proj, nil)
	prospectRepo.On("FindByID", mock.Anything, prospect.ID).Return(prospect, nil)

	return &diagramFixture{
		service:     NewDiagramService(diagramRepo, projectRepo, prospectRepo, renderer, zap.NewNop()),
		diagramRepo: diagramRepo,
		renderer:    renderer,
		project:     proj,
	}
}

func TestDiagramService_Save(t *testing.T) {
	ctx := context.Background()
	graph := json.RawMessage(`{"nodes":[{"id":"n1"}],"edges":[]}`)

	t.Run("creates when no id is given", func(t *testing.T) {
		principal := userPrincipal()
		f := newDiagramFixture(t, principal.UserID)
		f.diagramRepo.On("Save", ctx, mock.AnythingOfType("*project.Diagram")).Return(nil)

		resp, err := f.service.Save(ctx, principal, f.project.ID, SaveDiagramRequest{
			Title:     "Network plan",
			GraphJSON: graph,
		})

		require.NoError(t, err)
		assert.Equal(t, "Network plan", resp.Title)
		assert.JSONEq(t, string(graph), string(resp.GraphJSON))
	})

	t.Run("creates when the id is unknown", func(t *testing.T) {
		principal := userPrincipal()
		f := newDiagramFixture(t, principal.UserID)
		staleID := uuid.New()
		f.diagramRepo.On("FindByID", ctx, staleID).Return(nil, shared.ErrNotFound)
		f.diagramRepo.On("Save", ctx, mock.AnythingOfType("*project.Diagram")).Return(nil)

		resp, err := f.service.Save(ctx, principal, f.project.ID, SaveDiagramRequest{
			ID:        &staleID,
			GraphJSON: graph,
		})

		require.NoError(t, err)
		assert.NotEqual(t, staleID, resp.ID)
		assert.Equal(t, "Untitled diagram", resp.Title)
	})

	t.Run("overwrites in place when the id is known", func(t *testing.T) {
		principal := userPrincipal()
		f := newDiagramFixture(t, principal.UserID)
		existing, err := project.NewDiagram(f.project.ID, "Old title", `{"nodes":[]}`, "")
		require.NoError(t, err)
		f.diagramRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
		f.diagramRepo.On("Save", ctx, existing).Return(nil)

		resp, err := f.service.Save(ctx, principal, f.project.ID, SaveDiagramRequest{
			ID:        &existing.ID,
			Title:     "New title",
			GraphJSON: graph,
		})

		require.NoError(t, err)
		assert.Equal(t, existing.ID, resp.ID)
		assert.Equal(t, "New title", resp.Title)
	})

	t.Run("rejects a diagram from another project", func(t *testing.T) {
		principal := userPrincipal()
		f := newDiagramFixture(t, principal.UserID)
		foreign, err := project.NewDiagram(uuid.New(), "Elsewhere", `{"nodes":[]}`, "")
		require.NoError(t, err)
		f.diagramRepo.On("FindByID", ctx, foreign.ID).Return(foreign, nil)

		_, err = f.service.Save(ctx, principal, f.project.ID, SaveDiagramRequest{
			ID:        &foreign.ID,
			GraphJSON: graph,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DIAGRAM", domainErr.Code)
	})

	t.Run("rejects a graph that is not valid JSON", func(t *testing.T) {
		principal := userPrincipal()
		f := newDiagramFixture(t, principal.UserID)

		_, err := f.service.Save(ctx, principal, f.project.ID, SaveDiagramRequest{
			GraphJSON: json.RawMessage(`{"nodes":`),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DIAGRAM_GRAPH", domainErr.Code)
	})
}

func TestDiagramService_RenderPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("renders the stored snapshot", func(t *testing.T) {
		principal := userPrincipal()
		f := newDiagramFixture(t, principal.UserID)
		diagram, err := project.NewDiagram(f.project.ID, "Plan", `{"nodes":[]}`, "iVBORw0KGgo=")
		require.NoError(t, err)
		f.diagramRepo.On("FindByID", ctx, diagram.ID).Return(diagram, nil)

		pdf, err := f.service.RenderPDF(ctx, principal, diagram.ID)

		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.7 fake"), pdf)
		assert.Contains(t, f.renderer.gotHTML, "data:image/png;base64,iVBORw0KGgo=")
	})

	t.Run("fails when the diagram has no snapshot", func(t *testing.T) {
		principal := userPrincipal()
		f := newDiagramFixture(t, principal.UserID)
		diagram, err := project.NewDiagram(f.project.ID, "Plan", `{"nodes":[]}`, "")
		require.NoError(t, err)
		f.diagramRepo.On("FindByID", ctx, diagram.ID).Return(diagram, nil)

		_, err = f.service.RenderPDF(ctx, principal, diagram.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NO_SNAPSHOT", domainErr.Code)
	})

	t.Run("wraps renderer failures as an external service error", func(t *testing.T) {
		principal := userPrincipal()
		f := newDiagramFixture(t, principal.UserID)
		f.renderer.err = assert.AnError
		diagram, err := project.NewDiagram(f.project.ID, "Plan", `{"nodes":[]}`, "iVBORw0KGgo=")
		require.NoError(t, err)
		f.diagramRepo.On("FindByID", ctx, diagram.ID).Return(diagram, nil)

		_, err = f.service.RenderPDF(ctx, principal, diagram.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXTERNAL_SERVICE_ERROR", domainErr.Code)
	})
}

func TestDiagramService_List(t *testing.T) {
	ctx := context.Background()
	principal := userPrincipal()
	f := newDiagramFixture(t, principal.UserID)
	diagram, err := project.NewDiagram(f.project.ID, "Plan", `{"nodes":[]}`, "")
	require.NoError(t, err)
	f.diagramRepo.On("FindByProject", ctx, f.project.ID).Return([]project.Diagram{*diagram}, nil)

	items, err := f.service.List(ctx, principal, f.project.ID)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Plan", items[0].Title)
	assert.Nil(t, items[0].GraphJSON, "listing omits graph payloads")
}
