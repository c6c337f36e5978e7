package crm

import (
	"context"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()
	principal := adminPrincipal()
	now := time.Now()

	stale := ownedProspect(t, principal.UserID)
	stale.CreatedAt = now.AddDate(0, 0, -40)
	fresh, err := crm.NewProspect(principal.UserID, "Luis Vega", "luis@example.com")
	require.NoError(t, err)
	closed, err := crm.NewProspect(principal.UserID, "Old Deal", "old@example.com")
	require.NoError(t, err)
	closed.CreatedAt = now.AddDate(0, 0, -60)
	require.NoError(t, closed.SetState(crm.ProspectStateLost))

	worker, err := crm.NewWorker("Marta Ruiz", "Account manager", "", "")
	require.NoError(t, err)

	overdue, err := crm.NewReminder(stale.ID, principal.UserID, "Send offer", now.Add(-48*time.Hour))
	require.NoError(t, err)
	upcoming, err := crm.NewReminder(stale.ID, principal.UserID, "Follow up", now.Add(24*time.Hour))
	require.NoError(t, err)

	prospectRepo := new(MockProspectRepository)
	linkRepo := new(MockProspectWorkerRepository)
	interactionRepo := new(MockInteractionRepository)
	reminderRepo := new(MockReminderRepository)

	prospectRepo.On("CountByState", ctx, (*uuid.UUID)(nil)).Return(map[crm.ProspectState]int64{
		crm.ProspectStateNew:  2,
		crm.ProspectStateWon:  1,
		crm.ProspectStateLost: 1,
	}, nil)
	prospectRepo.On("CountCreatedSince", ctx, (*uuid.UUID)(nil), crm.ProspectState(""), mock.AnythingOfType("time.Time")).
		Return(int64(1), nil)
	prospectRepo.On("FindAll", ctx, (*uuid.UUID)(nil), mock.AnythingOfType("shared.Filter")).
		Return([]crm.Prospect{*stale, *fresh, *closed}, nil)
	linkRepo.On("TopRatedWorkers", ctx, dashboardTopWorkers).Return([]crm.WorkerRating{
		{WorkerID: worker.ID, WorkerName: worker.Name, Average: 4.2, Links: 3},
	}, nil)
	interactionRepo.On("LatestByProspect", ctx, (*uuid.UUID)(nil)).
		Return(map[uuid.UUID]time.Time{}, nil)
	reminderRepo.On("FindPending", ctx, (*uuid.UUID)(nil), mock.AnythingOfType("time.Time")).
		Return([]crm.Reminder{*overdue, *upcoming}, nil)

	service := NewDashboardService(prospectRepo, linkRepo, interactionRepo, reminderRepo)

	resp, err := service.Summary(ctx, principal)

	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.TotalProspects)
	assert.Equal(t, int64(1), resp.NewLast15Days)
	assert.Equal(t, int64(1), resp.WonProspects)
	require.Len(t, resp.StateCounts, 5)
	assert.Equal(t, "NEW", resp.StateCounts[0].State)
	assert.Equal(t, int64(2), resp.StateCounts[0].Count)

	require.Len(t, resp.TopWorkers, 1)
	assert.Equal(t, "Marta Ruiz", resp.TopWorkers[0].WorkerName)

	// Only the stale open prospect is flagged; the closed one is skipped
	require.Len(t, resp.InactiveProspects, 1)
	assert.Equal(t, stale.ID, resp.InactiveProspects[0].ProspectID)
	assert.Nil(t, resp.InactiveProspects[0].LastContactAt)
	assert.GreaterOrEqual(t, resp.InactiveProspects[0].DaysInactive, 39)

	require.Len(t, resp.OverdueReminders, 1)
	assert.Equal(t, "Send offer", resp.OverdueReminders[0].Title)
	require.Len(t, resp.UpcomingReminders, 1)
	assert.Equal(t, "Follow up", resp.UpcomingReminders[0].Title)
}
