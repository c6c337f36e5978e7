package crm

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InteractionRepository defines the interface for interaction persistence
type InteractionRepository interface {
	// FindByID finds an interaction by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Interaction, error)

	// FindByProspect returns a prospect's interactions, most recent first
	FindByProspect(ctx context.Context, prospectID uuid.UUID, filter shared.Filter) ([]Interaction, error)

	// CountSince counts interactions that occurred on or after the cutoff,
	// scoped to prospects owned by ownerID or unowned when non-nil
	CountSince(ctx context.Context, ownerID *uuid.UUID, since time.Time) (int64, error)

	// LatestByProspect returns the most recent interaction time per
	// prospect, scoped to prospects owned by ownerID or unowned when non-nil.
	// Prospects with no interactions are absent from the map.
	LatestByProspect(ctx context.Context, ownerID *uuid.UUID) (map[uuid.UUID]time.Time, error)

	// Save creates or updates an interaction
	Save(ctx context.Context, interaction *Interaction) error

	// Delete deletes an interaction
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReminderRepository defines the interface for reminder persistence
type ReminderRepository interface {
	// FindByID finds a reminder by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Reminder, error)

	// FindByProspect returns a prospect's reminders ordered by due time
	FindByProspect(ctx context.Context, prospectID uuid.UUID) ([]Reminder, error)

	// FindAll returns reminders ordered by due time, scoped to prospects
	// owned by ownerID when non-nil
	FindAll(ctx context.Context, ownerID *uuid.UUID) ([]Reminder, error)

	// FindPending returns incomplete reminders due on or before the
	// cutoff, scoped to prospects owned by ownerID or unowned when non-nil
	FindPending(ctx context.Context, ownerID *uuid.UUID, until time.Time) ([]Reminder, error)

	// Save creates or updates a reminder
	Save(ctx context.Context, reminder *Reminder) error

	// Delete deletes a reminder
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttachmentRepository defines the interface for attachment metadata
// persistence. Blob content lives in object storage under StorageKey.
type AttachmentRepository interface {
	// FindByID finds an attachment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Attachment, error)

	// FindByProspect returns a prospect's attachments, newest first
	FindByProspect(ctx context.Context, prospectID uuid.UUID) ([]Attachment, error)

	// Save creates or updates an attachment record
	Save(ctx context.Context, attachment *Attachment) error

	// Delete deletes an attachment record
	Delete(ctx context.Context, id uuid.UUID) error
}
