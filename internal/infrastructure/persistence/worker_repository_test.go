package persistence

import (
	"context"
	"testing"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWorker(t *testing.T, name string) *crm.Worker {
	t.Helper()
	worker, err := crm.NewWorker(name, "agent", "", "")
	require.NoError(t, err)
	return worker
}

func mustLink(t *testing.T, prospectID, workerID uuid.UUID, rating int) *crm.ProspectWorker {
	t.Helper()
	link, err := crm.NewProspectWorker(prospectID, workerID, rating)
	require.NoError(t, err)
	return link
}

func TestGormWorkerRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormWorkerRepository(db)
	ctx := context.Background()

	zoe := mustWorker(t, "Zoe")
	adam := mustWorker(t, "Adam")
	require.NoError(t, repo.Save(ctx, zoe))
	require.NoError(t, repo.Save(ctx, adam))

	t.Run("lists ordered by name", func(t *testing.T) {
		workers, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, workers, 2)
		assert.Equal(t, "Adam", workers[0].Name)
	})

	t.Run("delete removes links too", func(t *testing.T) {
		linkRepo := NewGormProspectWorkerRepository(db)
		prospectID := uuid.New()
		require.NoError(t, linkRepo.Save(ctx, mustLink(t, prospectID, zoe.ID, 4)))

		require.NoError(t, repo.Delete(ctx, zoe.ID))

		links, err := linkRepo.FindByProspect(ctx, prospectID)
		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("deleting a missing worker yields not found", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
	})
}

func TestGormProspectWorkerRepository_Ratings(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProspectWorkerRepository(db)
	workerRepo := NewGormWorkerRepository(db)
	ctx := context.Background()

	strong := mustWorker(t, "Strong")
	weak := mustWorker(t, "Weak")
	require.NoError(t, workerRepo.Save(ctx, strong))
	require.NoError(t, workerRepo.Save(ctx, weak))

	prospectA := uuid.New()
	prospectB := uuid.New()

	require.NoError(t, repo.Save(ctx, mustLink(t, prospectA, strong.ID, 5)))
	require.NoError(t, repo.Save(ctx, mustLink(t, prospectB, strong.ID, 3)))
	require.NoError(t, repo.Save(ctx, mustLink(t, prospectA, weak.ID, 1)))

	t.Run("averages per prospect", func(t *testing.T) {
		averages, err := repo.AverageRatings(ctx, []uuid.UUID{prospectA, prospectB})
		require.NoError(t, err)
		assert.InDelta(t, 3.0, averages[prospectA], 0.001)
		assert.InDelta(t, 3.0, averages[prospectB], 0.001)
	})

	t.Run("empty id list short circuits", func(t *testing.T) {
		averages, err := repo.AverageRatings(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, averages)
	})

	t.Run("top rated workers ordered by average", func(t *testing.T) {
		ratings, err := repo.TopRatedWorkers(ctx, 10)
		require.NoError(t, err)
		require.Len(t, ratings, 2)
		assert.Equal(t, "Strong", ratings[0].WorkerName)
		assert.InDelta(t, 4.0, ratings[0].Average, 0.001)
		assert.Equal(t, int64(2), ratings[0].Links)
	})

	t.Run("finds the unique pair link", func(t *testing.T) {
		link, err := repo.FindLink(ctx, prospectA, strong.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, link.Rating)

		_, err = repo.FindLink(ctx, uuid.New(), strong.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProspectWorkerRepository_DuplicatePairConstraint(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProspectWorkerRepository(db)
	ctx := context.Background()

	prospectID := uuid.New()
	workerID := uuid.New()

	require.NoError(t, repo.Save(ctx, mustLink(t, prospectID, workerID, 4)))

	// Same pair under a new link id hits the unique index and comes back
	// as a conflict instead of a raw driver error.
	err := repo.Save(ctx, mustLink(t, prospectID, workerID, 2))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}
