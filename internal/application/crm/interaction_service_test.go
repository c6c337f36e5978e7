package crm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInteractionService(interactionRepo *MockInteractionRepository, reminderRepo *MockReminderRepository, prospectRepo *MockProspectRepository) *InteractionService {
	return NewInteractionService(interactionRepo, reminderRepo, prospectRepo, zap.NewNop())
}

func TestInteractionService_CreateInteraction(t *testing.T) {
	ctx := context.Background()

	t.Run("records interaction for own prospect", func(t *testing.T) {
		interactionRepo := new(MockInteractionRepository)
		prospectRepo := new(MockProspectRepository)
		principal := userPrincipal()
		prospect := ownedProspect(t, principal.UserID)

		prospectRepo.On("FindByID", ctx, prospect.ID).Return(prospect, nil)
		interactionRepo.On("Save", ctx, mock.AnythingOfType("*crm.Interaction")).Return(nil)

		service := newInteractionService(interactionRepo, new(MockReminderRepository), prospectRepo)

		resp, err := service.CreateInteraction(ctx, principal, prospect.ID, CreateInteractionRequest{
			Type:  "CALL",
			Notes: "Discussed pricing",
		})

		require.NoError(t, err)
		assert.Equal(t, "CALL", resp.Type)
		assert.Equal(t, principal.UserID, resp.CreatedBy)
		assert.WithinDuration(t, time.Now(), resp.OccurredAt, time.Second)
	})

	t.Run("denies another user's prospect", func(t *testing.T) {
		prospectRepo := new(MockProspectRepository)
		prospect := ownedProspect(t, userPrincipal().UserID)

		prospectRepo.On("FindByID", ctx, prospect.ID).Return(prospect, nil)

		service := newInteractionService(new(MockInteractionRepository), new(MockReminderRepository), prospectRepo)

		resp, err := service.CreateInteraction(ctx, userPrincipal(), prospect.ID, CreateInteractionRequest{
			Type:  "CALL",
			Notes: "Discussed pricing",
		})

		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, shared.ErrForbidden))
	})
}

func TestInteractionService_Reminders(t *testing.T) {
	ctx := context.Background()

	t.Run("creates reminder", func(t *testing.T) {
		reminderRepo := new(MockReminderRepository)
		prospectRepo := new(MockProspectRepository)
		principal := userPrincipal()
		prospect := ownedProspect(t, principal.UserID)
		due := time.Now().Add(48 * time.Hour)

		prospectRepo.On("FindByID", ctx, prospect.ID).Return(prospect, nil)
		reminderRepo.On("Save", ctx, mock.AnythingOfType("*crm.Reminder")).Return(nil)

		service := newInteractionService(new(MockInteractionRepository), reminderRepo, prospectRepo)

		resp, err := service.CreateReminder(ctx, principal, prospect.ID, CreateReminderRequest{
			Title: "Call back",
			DueAt: due,
		})

		require.NoError(t, err)
		assert.Equal(t, "Call back", resp.Title)
		assert.False(t, resp.Completed)
	})

	t.Run("toggle flips completion", func(t *testing.T) {
		reminderRepo := new(MockReminderRepository)
		prospectRepo := new(MockProspectRepository)
		principal := userPrincipal()
		prospect := ownedProspect(t, principal.UserID)

		reminder, err := crm.NewReminder(prospect.ID, principal.UserID, "Call back", time.Now().Add(time.Hour))
		require.NoError(t, err)

		reminderRepo.On("FindByID", ctx, reminder.ID).Return(reminder, nil)
		reminderRepo.On("Save", ctx, reminder).Return(nil)
		prospectRepo.On("FindByID", ctx, prospect.ID).Return(prospect, nil)

		service := newInteractionService(new(MockInteractionRepository), reminderRepo, prospectRepo)

		resp, err := service.ToggleReminder(ctx, principal, reminder.ID)
		require.NoError(t, err)
		assert.True(t, resp.Completed)

		resp, err = service.ToggleReminder(ctx, principal, reminder.ID)
		require.NoError(t, err)
		assert.False(t, resp.Completed)
	})
}

func TestCalendarService_Events(t *testing.T) {
	ctx := context.Background()
	principal := userPrincipal()
	prospect := ownedProspect(t, principal.UserID)

	overdue, err := crm.NewReminder(prospect.ID, principal.UserID, "Send offer", time.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	done, err := crm.NewReminder(prospect.ID, principal.UserID, "Intro call", time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	done.Toggle()
	pending, err := crm.NewReminder(prospect.ID, principal.UserID, "Follow up", time.Now().Add(24*time.Hour))
	require.NoError(t, err)

	reminderRepo := new(MockReminderRepository)
	reminderRepo.On("FindAll", ctx, &principal.UserID).
		Return([]crm.Reminder{*overdue, *done, *pending}, nil)

	service := NewCalendarService(reminderRepo)

	events, err := service.Events(ctx, principal)

	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "overdue", events[0].Status)
	assert.Equal(t, "#dc3545", events[0].Color)
	assert.Equal(t, "completed", events[1].Status)
	assert.Equal(t, "#28a745", events[1].Color)
	assert.Equal(t, "pending", events[2].Status)
	assert.Equal(t, "#007bff", events[2].Color)
	assert.Equal(t, "/prospects/"+prospect.ID.String(), events[2].URL)
}
