package crm

import (
	"context"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WorkerRepository defines the interface for worker persistence
type WorkerRepository interface {
	// FindByID finds a worker by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Worker, error)

	// FindAll finds workers matching the filter, ordered by name
	FindAll(ctx context.Context, filter shared.Filter) ([]Worker, error)

	// Count counts workers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a worker
	Save(ctx context.Context, worker *Worker) error

	// Delete deletes a worker and removes its prospect links
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkerRating is an aggregate of the ratings a worker has received
// across prospect assignments.
type WorkerRating struct {
	WorkerID   uuid.UUID
	WorkerName string
	Average    float64
	Links      int64
}

// ProspectWorkerRepository defines the interface for prospect-worker
// link persistence
type ProspectWorkerRepository interface {
	// FindByID finds a link by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProspectWorker, error)

	// FindByProspect returns all links for a prospect
	FindByProspect(ctx context.Context, prospectID uuid.UUID) ([]ProspectWorker, error)

	// FindByWorker returns all links for a worker
	FindByWorker(ctx context.Context, workerID uuid.UUID) ([]ProspectWorker, error)

	// FindLink finds the link between a prospect and a worker, if any
	FindLink(ctx context.Context, prospectID, workerID uuid.UUID) (*ProspectWorker, error)

	// AverageRatings returns the average rating per prospect for the
	// given prospects; prospects without links are absent from the map
	AverageRatings(ctx context.Context, prospectIDs []uuid.UUID) (map[uuid.UUID]float64, error)

	// TopRatedWorkers returns per-worker rating aggregates ordered by
	// average descending, limited to the given count
	TopRatedWorkers(ctx context.Context, limit int) ([]WorkerRating, error)

	// Save creates or updates a link
	Save(ctx context.Context, link *ProspectWorker) error

	// Delete deletes a link
	Delete(ctx context.Context, id uuid.UUID) error
}
