package crm

import (
	"context"
	"sort"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	// Window for the "new prospects" figure and inactivity flagging
	dashboardRecentDays = 15
	// Horizon for the upcoming-reminders panel
	dashboardReminderDays = 7
	// Workers shown in the rating ranking
	dashboardTopWorkers = 5
)

// DashboardService aggregates the home screen figures
type DashboardService struct {
	prospectRepo    crm.ProspectRepository
	linkRepo        crm.ProspectWorkerRepository
	interactionRepo crm.InteractionRepository
	reminderRepo    crm.ReminderRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	prospectRepo crm.ProspectRepository,
	linkRepo crm.ProspectWorkerRepository,
	interactionRepo crm.InteractionRepository,
	reminderRepo crm.ReminderRepository,
) *DashboardService {
	return &DashboardService{
		prospectRepo:    prospectRepo,
		linkRepo:        linkRepo,
		interactionRepo: interactionRepo,
		reminderRepo:    reminderRepo,
	}
}

// Summary builds the dashboard for the acting principal's scope
func (s *DashboardService) Summary(ctx context.Context, principal identity.Principal) (*DashboardResponse, error) {
	scope := ownerScope(principal)
	now := time.Now()

	stateCounts, err := s.prospectRepo.CountByState(ctx, scope)
	if err != nil {
		return nil, err
	}

	var total int64
	counts := make([]DashboardStateCount, 0, len(crm.ProspectStates()))
	for _, state := range crm.ProspectStates() {
		count := stateCounts[state]
		total += count
		counts = append(counts, DashboardStateCount{
			State: string(state),
			Color: stateColor(state),
			Count: count,
		})
	}

	newRecently, err := s.prospectRepo.CountCreatedSince(ctx, scope, "", now.AddDate(0, 0, -dashboardRecentDays))
	if err != nil {
		return nil, err
	}

	topWorkers, err := s.linkRepo.TopRatedWorkers(ctx, dashboardTopWorkers)
	if err != nil {
		return nil, err
	}
	workerRatings := make([]DashboardWorkerRating, len(topWorkers))
	for i, w := range topWorkers {
		workerRatings[i] = DashboardWorkerRating{
			WorkerID:   w.WorkerID,
			WorkerName: w.WorkerName,
			Average:    w.Average,
			Links:      w.Links,
		}
	}

	inactive, err := s.inactiveProspects(ctx, scope, now)
	if err != nil {
		return nil, err
	}

	upcoming, overdue, err := s.reminderPanels(ctx, scope, now)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		TotalProspects:    total,
		NewLast15Days:     newRecently,
		WonProspects:      stateCounts[crm.ProspectStateWon],
		StateCounts:       counts,
		TopWorkers:        workerRatings,
		InactiveProspects: inactive,
		UpcomingReminders: upcoming,
		OverdueReminders:  overdue,
	}, nil
}

// inactiveProspects flags open prospects whose last interaction is older
// than the recency window, or that were never contacted at all
func (s *DashboardService) inactiveProspects(ctx context.Context, scope *uuid.UUID, now time.Time) ([]DashboardInactiveProspect, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 500

	prospects, err := s.prospectRepo.FindAll(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	latest, err := s.interactionRepo.LatestByProspect(ctx, scope)
	if err != nil {
		return nil, err
	}

	cutoff := now.AddDate(0, 0, -dashboardRecentDays)
	inactive := make([]DashboardInactiveProspect, 0)
	for i := range prospects {
		p := &prospects[i]
		if p.IsClosed() {
			continue
		}

		last, contacted := latest[p.ID]
		reference := p.CreatedAt
		var lastContact *time.Time
		if contacted {
			reference = last
			t := last
			lastContact = &t
		}
		if reference.After(cutoff) {
			continue
		}

		inactive = append(inactive, DashboardInactiveProspect{
			ProspectID:    p.ID,
			FullName:      p.FullName,
			Company:       p.Company,
			LastContactAt: lastContact,
			DaysInactive:  int(now.Sub(reference).Hours() / 24),
		})
	}

	sort.Slice(inactive, func(i, j int) bool {
		return inactive[i].DaysInactive > inactive[j].DaysInactive
	})
	return inactive, nil
}

// reminderPanels splits pending reminders around now: overdue behind it,
// upcoming within the horizon ahead of it
func (s *DashboardService) reminderPanels(ctx context.Context, scope *uuid.UUID, now time.Time) (upcoming, overdue []ReminderResponse, err error) {
	pending, err := s.reminderRepo.FindPending(ctx, scope, now.AddDate(0, 0, dashboardReminderDays))
	if err != nil {
		return nil, nil, err
	}

	upcoming = make([]ReminderResponse, 0)
	overdue = make([]ReminderResponse, 0)
	for i := range pending {
		r := ToReminderResponse(&pending[i])
		if pending[i].DueAt.Before(now) {
			overdue = append(overdue, r)
		} else {
			upcoming = append(upcoming, r)
		}
	}
	return upcoming, overdue, nil
}

func stateColor(state crm.ProspectState) string {
	p := crm.Prospect{State: state}
	return p.StateColor()
}
