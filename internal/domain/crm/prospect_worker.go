package crm

import (
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Rating bounds for prospect-worker relationship quality
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// ProspectWorker links a worker to a prospect as a contact point, rated
// 1-5 for relationship quality. The (prospect, worker) pair is unique.
type ProspectWorker struct {
	shared.BaseEntity
	ProspectID uuid.UUID
	WorkerID   uuid.UUID
	Rating     int
}

// NewProspectWorker links a worker to a prospect with the given rating.
// A zero rating falls back to the default.
func NewProspectWorker(prospectID, workerID uuid.UUID, rating int) (*ProspectWorker, error) {
	if rating == 0 {
		rating = DefaultRating
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	return &ProspectWorker{
		BaseEntity: shared.NewBaseEntity(),
		ProspectID: prospectID,
		WorkerID:   workerID,
		Rating:     rating,
	}, nil
}

// SetRating updates the relationship rating
func (pw *ProspectWorker) SetRating(rating int) error {
	if err := validateRating(rating); err != nil {
		return err
	}
	pw.Rating = rating
	pw.Touch()
	return nil
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return nil
}
