package project

import (
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProjectCreatedEvent is published when a project is created for a won
// prospect
type ProjectCreatedEvent struct {
	shared.BaseDomainEvent
	ProspectID uuid.UUID `json:"prospect_id"`
	Name       string    `json:"name"`
}

func NewProjectCreatedEvent(projectID, prospectID uuid.UUID, name string) *ProjectCreatedEvent {
	return &ProjectCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("project.created", projectID, "Project"),
		ProspectID:      prospectID,
		Name:            name,
	}
}
