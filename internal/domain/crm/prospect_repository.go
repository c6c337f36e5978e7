package crm

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProspectRepository defines the interface for prospect persistence.
// Query methods that take an ownerID pre-filter to prospects owned by
// that user or unowned; a nil ownerID means no ownership filter
// (administrator scope).
type ProspectRepository interface {
	// FindByID finds a prospect by its ID, tags loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Prospect, error)

	// FindByEmail finds a prospect by its (unique) email
	FindByEmail(ctx context.Context, email string) (*Prospect, error)

	// ExistsByEmail checks if a prospect with the given email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindAll finds prospects matching the filter, newest first.
	// Filter.Search matches name, email, or company; Filter.Filters may
	// carry a "state" entry.
	FindAll(ctx context.Context, ownerID *uuid.UUID, filter shared.Filter) ([]Prospect, error)

	// FindByState finds prospects in the given state, newest first
	FindByState(ctx context.Context, ownerID *uuid.UUID, state ProspectState, filter shared.Filter) ([]Prospect, error)

	// Count counts prospects matching the filter
	Count(ctx context.Context, ownerID *uuid.UUID, filter shared.Filter) (int64, error)

	// CountByState returns prospect counts grouped by pipeline state
	CountByState(ctx context.Context, ownerID *uuid.UUID) (map[ProspectState]int64, error)

	// CountCreatedSince counts prospects in the given state created on or
	// after the cutoff
	CountCreatedSince(ctx context.Context, ownerID *uuid.UUID, state ProspectState, since time.Time) (int64, error)

	// Save creates or updates a prospect (tags excluded)
	Save(ctx context.Context, prospect *Prospect) error

	// SaveTags replaces the prospect's tag set
	SaveTags(ctx context.Context, prospect *Prospect) error

	// Delete deletes a prospect and cascades to its children
	Delete(ctx context.Context, id uuid.UUID) error
}

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	// FindByID finds a tag by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tag, error)

	// FindByName finds a tag by its (unique) name
	FindByName(ctx context.Context, name string) (*Tag, error)

	// FindAll returns all tags ordered by name
	FindAll(ctx context.Context) ([]Tag, error)

	// Save creates or updates a tag
	Save(ctx context.Context, tag *Tag) error

	// Delete deletes a tag and detaches it from all prospects
	Delete(ctx context.Context, id uuid.UUID) error
}
