package crm

import (
	"context"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InteractionService handles interactions and reminders on prospects
type InteractionService struct {
	interactionRepo crm.InteractionRepository
	reminderRepo    crm.ReminderRepository
	prospectRepo    crm.ProspectRepository
	logger          *zap.Logger
}

// NewInteractionService creates a new InteractionService
func NewInteractionService(
	interactionRepo crm.InteractionRepository,
	reminderRepo crm.ReminderRepository,
	prospectRepo crm.ProspectRepository,
	logger *zap.Logger,
) *InteractionService {
	return &InteractionService{
		interactionRepo: interactionRepo,
		reminderRepo:    reminderRepo,
		prospectRepo:    prospectRepo,
		logger:          logger,
	}
}

func (s *InteractionService) authorizeProspect(ctx context.Context, principal identity.Principal, prospectID uuid.UUID) error {
	prospect, err := s.prospectRepo.FindByID(ctx, prospectID)
	if err != nil {
		return err
	}
	return crm.Authorize(principal, prospect.GetOwnerID())
}

// CreateInteraction records a touch point with a prospect, timestamped now
func (s *InteractionService) CreateInteraction(ctx context.Context, principal identity.Principal, prospectID uuid.UUID, req CreateInteractionRequest) (*InteractionResponse, error) {
	if err := s.authorizeProspect(ctx, principal, prospectID); err != nil {
		return nil, err
	}

	interaction, err := crm.NewInteraction(prospectID, principal.UserID, crm.InteractionType(req.Type), req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.interactionRepo.Save(ctx, interaction); err != nil {
		return nil, err
	}

	response := ToInteractionResponse(interaction)
	return &response, nil
}

// ListInteractions returns a prospect's interactions, newest first
func (s *InteractionService) ListInteractions(ctx context.Context, principal identity.Principal, prospectID uuid.UUID, filter shared.Filter) ([]InteractionResponse, error) {
	if err := s.authorizeProspect(ctx, principal, prospectID); err != nil {
		return nil, err
	}

	interactions, err := s.interactionRepo.FindByProspect(ctx, prospectID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]InteractionResponse, len(interactions))
	for i := range interactions {
		responses[i] = ToInteractionResponse(&interactions[i])
	}
	return responses, nil
}

// UpdateInteraction edits an interaction's type and notes
func (s *InteractionService) UpdateInteraction(ctx context.Context, principal identity.Principal, id uuid.UUID, req UpdateInteractionRequest) (*InteractionResponse, error) {
	interaction, err := s.interactionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeProspect(ctx, principal, interaction.ProspectID); err != nil {
		return nil, err
	}

	if err := interaction.Update(crm.InteractionType(req.Type), req.Notes); err != nil {
		return nil, err
	}
	if err := s.interactionRepo.Save(ctx, interaction); err != nil {
		return nil, err
	}

	response := ToInteractionResponse(interaction)
	return &response, nil
}

// DeleteInteraction removes an interaction
func (s *InteractionService) DeleteInteraction(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	interaction, err := s.interactionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeProspect(ctx, principal, interaction.ProspectID); err != nil {
		return err
	}
	return s.interactionRepo.Delete(ctx, id)
}

// CreateReminder schedules a reminder on a prospect
func (s *InteractionService) CreateReminder(ctx context.Context, principal identity.Principal, prospectID uuid.UUID, req CreateReminderRequest) (*ReminderResponse, error) {
	if err := s.authorizeProspect(ctx, principal, prospectID); err != nil {
		return nil, err
	}

	reminder, err := crm.NewReminder(prospectID, principal.UserID, req.Title, req.DueAt)
	if err != nil {
		return nil, err
	}
	if err := s.reminderRepo.Save(ctx, reminder); err != nil {
		return nil, err
	}

	response := ToReminderResponse(reminder)
	return &response, nil
}

// ListReminders returns a prospect's reminders by due time, latest first
func (s *InteractionService) ListReminders(ctx context.Context, principal identity.Principal, prospectID uuid.UUID) ([]ReminderResponse, error) {
	if err := s.authorizeProspect(ctx, principal, prospectID); err != nil {
		return nil, err
	}

	reminders, err := s.reminderRepo.FindByProspect(ctx, prospectID)
	if err != nil {
		return nil, err
	}

	responses := make([]ReminderResponse, len(reminders))
	for i := range reminders {
		responses[i] = ToReminderResponse(&reminders[i])
	}
	return responses, nil
}

// UpdateReminder edits a reminder's title and due time
func (s *InteractionService) UpdateReminder(ctx context.Context, principal identity.Principal, id uuid.UUID, req UpdateReminderRequest) (*ReminderResponse, error) {
	reminder, err := s.reminderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeProspect(ctx, principal, reminder.ProspectID); err != nil {
		return nil, err
	}

	if err := reminder.Update(req.Title, req.DueAt); err != nil {
		return nil, err
	}
	if err := s.reminderRepo.Save(ctx, reminder); err != nil {
		return nil, err
	}

	response := ToReminderResponse(reminder)
	return &response, nil
}

// ToggleReminder flips a reminder's completed flag
func (s *InteractionService) ToggleReminder(ctx context.Context, principal identity.Principal, id uuid.UUID) (*ReminderResponse, error) {
	reminder, err := s.reminderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeProspect(ctx, principal, reminder.ProspectID); err != nil {
		return nil, err
	}

	reminder.Toggle()
	if err := s.reminderRepo.Save(ctx, reminder); err != nil {
		return nil, err
	}

	s.logger.Info("Reminder toggled",
		zap.String("reminder_id", id.String()),
		zap.Bool("completed", reminder.Completed))

	response := ToReminderResponse(reminder)
	return &response, nil
}

// DeleteReminder removes a reminder
func (s *InteractionService) DeleteReminder(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	reminder, err := s.reminderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeProspect(ctx, principal, reminder.ProspectID); err != nil {
		return err
	}
	return s.reminderRepo.Delete(ctx, id)
}
