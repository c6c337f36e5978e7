package project

import (
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliverableStatus represents the progress of a deliverable
type DeliverableStatus string

const (
	DeliverableStatusPending    DeliverableStatus = "PENDING"
	DeliverableStatusInProgress DeliverableStatus = "IN_PROGRESS"
	DeliverableStatusDone       DeliverableStatus = "DONE"
)

// Deliverable is a unit of work committed to within a project
type Deliverable struct {
	shared.BaseEntity
	ProjectID   uuid.UUID
	Title       string
	Description string
	Status      DeliverableStatus
	DueAt       *time.Time
}

// NewDeliverable creates a pending deliverable
func NewDeliverable(projectID uuid.UUID, title, description string, dueAt *time.Time) (*Deliverable, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_DELIVERABLE_TITLE", "Deliverable title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_DELIVERABLE_TITLE", "Deliverable title cannot exceed 200 characters")
	}
	return &Deliverable{
		BaseEntity:  shared.NewBaseEntity(),
		ProjectID:   projectID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      DeliverableStatusPending,
		DueAt:       dueAt,
	}, nil
}

// Update changes the deliverable's editable fields
func (d *Deliverable) Update(title, description string, dueAt *time.Time) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_DELIVERABLE_TITLE", "Deliverable title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_DELIVERABLE_TITLE", "Deliverable title cannot exceed 200 characters")
	}
	d.Title = title
	d.Description = strings.TrimSpace(description)
	d.DueAt = dueAt
	d.Touch()
	return nil
}

// SetStatus moves the deliverable to the given status
func (d *Deliverable) SetStatus(status DeliverableStatus) error {
	switch status {
	case DeliverableStatusPending, DeliverableStatusInProgress, DeliverableStatusDone:
	default:
		return shared.NewDomainError("INVALID_DELIVERABLE_STATUS", "Invalid deliverable status")
	}
	d.Status = status
	d.Touch()
	return nil
}

// IsOverdue reports whether the deliverable is past due and not done
func (d *Deliverable) IsOverdue(now time.Time) bool {
	return d.DueAt != nil && d.Status != DeliverableStatusDone && d.DueAt.Before(now)
}
