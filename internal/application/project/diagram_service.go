package project

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/project"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SnapshotRenderer turns a diagram snapshot into a PDF document. The
// snapshot is self-contained HTML; rendering depends on nothing else.
type SnapshotRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// DiagramService stores and renders project diagrams. The graph payload
// is opaque to the backend: it is validated as JSON and handed back to
// the editor untouched.
type DiagramService struct {
	diagramRepo  project.DiagramRepository
	projectRepo  project.ProjectRepository
	prospectRepo crm.ProspectRepository
	renderer     SnapshotRenderer
	logger       *zap.Logger
}

// NewDiagramService creates a new diagram service
func NewDiagramService(
	diagramRepo project.DiagramRepository,
	projectRepo project.ProjectRepository,
	prospectRepo crm.ProspectRepository,
	renderer SnapshotRenderer,
	logger *zap.Logger,
) *DiagramService {
	return &DiagramService{
		diagramRepo:  diagramRepo,
		projectRepo:  projectRepo,
		prospectRepo: prospectRepo,
		renderer:     renderer,
		logger:       logger,
	}
}

// Save creates or overwrites a diagram. A request carrying a known ID
// overwrites that diagram in place, last write wins; an absent or
// unknown ID creates a new one.
func (s *DiagramService) Save(ctx context.Context, principal identity.Principal, projectID uuid.UUID, req SaveDiagramRequest) (*DiagramResponse, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, err
	}

	if req.ID != nil {
		existing, err := s.diagramRepo.FindByID(ctx, *req.ID)
		if err == nil {
			if existing.ProjectID != projectID {
				return nil, shared.NewDomainError("INVALID_DIAGRAM", "Diagram belongs to another project")
			}
			if err := existing.Update(req.Title, string(req.GraphJSON), req.Snapshot); err != nil {
				return nil, err
			}
			if err := s.diagramRepo.Save(ctx, existing); err != nil {
				return nil, err
			}
			resp := ToDiagramResponse(existing)
			return &resp, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	diagram, err := project.NewDiagram(projectID, req.Title, string(req.GraphJSON), req.Snapshot)
	if err != nil {
		return nil, err
	}
	if err := s.diagramRepo.Save(ctx, diagram); err != nil {
		return nil, err
	}
	resp := ToDiagramResponse(diagram)
	return &resp, nil
}

// Get retrieves a diagram with its stored graph
func (s *DiagramService) Get(ctx context.Context, principal identity.Principal, id uuid.UUID) (*DiagramResponse, error) {
	diagram, err := s.authorizeDiagram(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	resp := ToDiagramResponse(diagram)
	return &resp, nil
}

// List returns a project's diagrams, newest first, without graph
// payloads
func (s *DiagramService) List(ctx context.Context, principal identity.Principal, projectID uuid.UUID) ([]DiagramResponse, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, err
	}
	diagrams, err := s.diagramRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items := make([]DiagramResponse, len(diagrams))
	for i := range diagrams {
		items[i] = ToDiagramResponse(&diagrams[i])
		items[i].GraphJSON = nil
	}
	return items, nil
}

// RenderPDF renders a diagram's stored snapshot to a PDF. The result
// depends only on the snapshot saved with the diagram, never on the
// live editor state.
func (s *DiagramService) RenderPDF(ctx context.Context, principal identity.Principal, id uuid.UUID) ([]byte, error) {
	diagram, err := s.authorizeDiagram(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(diagram.Snapshot) == "" {
		return nil, shared.NewDomainError("NO_SNAPSHOT", "Diagram has no snapshot to render")
	}

	html := snapshotHTML(diagram)
	start := time.Now()
	pdf, err := s.renderer.RenderPDF(ctx, html)
	if err != nil {
		s.logger.Error("Diagram render failed",
			zap.String("diagram_id", id.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("EXTERNAL_SERVICE_ERROR", "Diagram rendering failed: "+err.Error())
	}
	s.logger.Info("Diagram rendered",
		zap.String("diagram_id", id.String()),
		zap.Duration("took", time.Since(start)))
	return pdf, nil
}

// Delete removes a diagram
func (s *DiagramService) Delete(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	diagram, err := s.authorizeDiagram(ctx, principal, id)
	if err != nil {
		return err
	}
	return s.diagramRepo.Delete(ctx, diagram.ID)
}

func (s *DiagramService) authorizeProject(ctx context.Context, principal identity.Principal, projectID uuid.UUID) error {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	return authorizeViaProspect(ctx, s.prospectRepo, principal, proj.ProspectID)
}

func (s *DiagramService) authorizeDiagram(ctx context.Context, principal identity.Principal, id uuid.UUID) (*project.Diagram, error) {
	diagram, err := s.diagramRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeProject(ctx, principal, diagram.ProjectID); err != nil {
		return nil, err
	}
	return diagram, nil
}

// snapshotHTML wraps a stored snapshot in a printable page. Snapshots
// arrive from the editor as base64 PNG data, with or without the data
// URL prefix; anything already HTML passes through as is.
func snapshotHTML(d *project.Diagram) string {
	snap := strings.TrimSpace(d.Snapshot)
	if strings.HasPrefix(snap, "<") {
		return snap
	}
	src := snap
	if !strings.HasPrefix(src, "data:") {
		src = "data:image/png;base64," + snap
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>")
	b.WriteString(htmlEscape(d.Title))
	b.WriteString("</title><style>body{margin:0}img{max-width:100%}</style></head><body><img src=\"")
	b.WriteString(src)
	b.WriteString("\"></body></html>")
	return b.String()
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}
