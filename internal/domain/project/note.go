package project

import (
	"strings"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Note is a free-form annotation on a project. CreatedBy is nullable:
// when the authoring user is removed the note text survives with the
// creator cleared.
type Note struct {
	shared.BaseEntity
	ProjectID uuid.UUID
	Body      string
	CreatedBy *uuid.UUID
}

// NewNote creates a note on a project
func NewNote(projectID uuid.UUID, body string, createdBy uuid.UUID) (*Note, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, shared.NewDomainError("INVALID_NOTE_BODY", "Note body cannot be empty")
	}
	author := createdBy
	return &Note{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  projectID,
		Body:       body,
		CreatedBy:  &author,
	}, nil
}

// Update replaces the note body
func (n *Note) Update(body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return shared.NewDomainError("INVALID_NOTE_BODY", "Note body cannot be empty")
	}
	n.Body = body
	n.Touch()
	return nil
}
