package project

import (
	"encoding/json"
	"strings"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Diagram is a flowchart drawn in the project workspace. GraphJSON is
// stored as the client sent it and decoded only at the API boundary;
// Snapshot is the rendered vector markup used for PDF export and is
// kept in sync with the graph by the caller at save time.
type Diagram struct {
	shared.BaseEntity
	ProjectID uuid.UUID
	Title     string
	GraphJSON string
	Snapshot  string
}

// NewDiagram creates a diagram with the given graph payload
func NewDiagram(projectID uuid.UUID, title, graphJSON, snapshot string) (*Diagram, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled diagram"
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_DIAGRAM_TITLE", "Diagram title cannot exceed 200 characters")
	}
	if err := validateGraph(graphJSON); err != nil {
		return nil, err
	}
	return &Diagram{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  projectID,
		Title:      title,
		GraphJSON:  graphJSON,
		Snapshot:   snapshot,
	}, nil
}

// Update overwrites the diagram's title, graph and snapshot in place.
// Last write wins; there is no merge.
func (d *Diagram) Update(title, graphJSON, snapshot string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled diagram"
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_DIAGRAM_TITLE", "Diagram title cannot exceed 200 characters")
	}
	if err := validateGraph(graphJSON); err != nil {
		return err
	}
	d.Title = title
	d.GraphJSON = graphJSON
	d.Snapshot = snapshot
	d.Touch()
	return nil
}

func validateGraph(graphJSON string) error {
	if strings.TrimSpace(graphJSON) == "" {
		return shared.NewDomainError("INVALID_DIAGRAM_GRAPH", "Diagram graph cannot be empty")
	}
	if !json.Valid([]byte(graphJSON)) {
		return shared.NewDomainError("INVALID_DIAGRAM_GRAPH", "Diagram graph must be valid JSON")
	}
	return nil
}
