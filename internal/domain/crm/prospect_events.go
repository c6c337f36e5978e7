package crm

import (
	"github.com/crm/backend/internal/domain/shared"
)

// Aggregate type constant for Prospect
const AggregateTypeProspect = "Prospect"

// Prospect domain event types
const (
	EventTypeProspectCreated      = "ProspectCreated"
	EventTypeProspectStateChanged = "ProspectStateChanged"
)

// ProspectCreatedEvent is published when a prospect is created
type ProspectCreatedEvent struct {
	shared.BaseDomainEvent
	FullName string        `json:"full_name"`
	Email    string        `json:"email"`
	State    ProspectState `json:"state"`
}

// NewProspectCreatedEvent creates a new ProspectCreatedEvent
func NewProspectCreatedEvent(p *Prospect) *ProspectCreatedEvent {
	return &ProspectCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProspectCreated, p.ID, AggregateTypeProspect),
		FullName:        p.FullName,
		Email:           p.Email,
		State:           p.State,
	}
}

// ProspectStateChangedEvent is published when a prospect moves to a new
// pipeline state
type ProspectStateChangedEvent struct {
	shared.BaseDomainEvent
	OldState ProspectState `json:"old_state"`
	NewState ProspectState `json:"new_state"`
}

// NewProspectStateChangedEvent creates a new ProspectStateChangedEvent
func NewProspectStateChangedEvent(p *Prospect, oldState, newState ProspectState) *ProspectStateChangedEvent {
	return &ProspectStateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProspectStateChanged, p.ID, AggregateTypeProspect),
		OldState:        oldState,
		NewState:        newState,
	}
}
