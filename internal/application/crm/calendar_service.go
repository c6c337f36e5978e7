package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
)

// Calendar feed colors
const (
	calendarColorOverdue   = "#dc3545"
	calendarColorCompleted = "#28a745"
	calendarColorPending   = "#007bff"
)

// CalendarService derives the calendar feed from reminders
type CalendarService struct {
	reminderRepo crm.ReminderRepository
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(reminderRepo crm.ReminderRepository) *CalendarService {
	return &CalendarService{reminderRepo: reminderRepo}
}

// Events returns one calendar entry per reminder visible to the caller.
// Overdue reminders are red, completed ones green, the rest blue.
func (s *CalendarService) Events(ctx context.Context, principal identity.Principal) ([]CalendarEvent, error) {
	reminders, err := s.reminderRepo.FindAll(ctx, ownerScope(principal))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	events := make([]CalendarEvent, len(reminders))
	for i := range reminders {
		r := &reminders[i]

		color := calendarColorPending
		status := "pending"
		switch {
		case r.Completed:
			color = calendarColorCompleted
			status = "completed"
		case r.IsOverdue(now):
			color = calendarColorOverdue
			status = "overdue"
		}

		events[i] = CalendarEvent{
			Title:  r.Title,
			Start:  r.DueAt,
			End:    r.DueAt.Add(time.Hour),
			URL:    fmt.Sprintf("/prospects/%s", r.ProspectID),
			Color:  color,
			Status: status,
		}
	}
	return events, nil
}
