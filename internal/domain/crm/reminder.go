package crm

import (
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Reminder is a dated follow-up note attached to a prospect
type Reminder struct {
	shared.BaseEntity
	ProspectID uuid.UUID
	Title      string
	DueAt      time.Time
	Completed  bool
	CreatedBy  uuid.UUID
}

// NewReminder creates a new pending reminder
func NewReminder(prospectID, createdBy uuid.UUID, title string, dueAt time.Time) (*Reminder, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Reminder title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Reminder title cannot exceed 200 characters")
	}
	if dueAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Reminder due date is required")
	}

	return &Reminder{
		BaseEntity: shared.NewBaseEntity(),
		ProspectID: prospectID,
		Title:      title,
		DueAt:      dueAt,
		CreatedBy:  createdBy,
	}, nil
}

// Update changes the reminder's title and due date
func (r *Reminder) Update(title string, dueAt time.Time) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Reminder title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Reminder title cannot exceed 200 characters")
	}
	if dueAt.IsZero() {
		return shared.NewDomainError("INVALID_DUE_DATE", "Reminder due date is required")
	}

	r.Title = title
	r.DueAt = dueAt
	r.Touch()

	return nil
}

// Toggle flips the completed flag and returns the new value
func (r *Reminder) Toggle() bool {
	r.Completed = !r.Completed
	r.Touch()
	return r.Completed
}

// IsOverdue returns true for pending reminders whose due date has passed
func (r *Reminder) IsOverdue(now time.Time) bool {
	return !r.Completed && r.DueAt.Before(now)
}
