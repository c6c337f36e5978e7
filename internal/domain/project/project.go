package project

import (
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Project is the delivery workspace created for a won prospect. Each
// prospect has at most one project; ownership is derived from the
// prospect's owner, never stored here.
type Project struct {
	shared.BaseAggregateRoot
	ProspectID       uuid.UUID
	Name             string
	StartDate        *time.Time
	EstimatedEndDate *time.Time
	Budget           decimal.Decimal
	PlanningNotes    string
	ClosingSummary   string
	// LegacyDiagramJSON holds a diagram layout persisted before diagrams
	// became standalone records. Kept readable, never written.
	LegacyDiagramJSON string
}

// NewProject creates a project for a won prospect
func NewProject(prospectID uuid.UUID, name string) (*Project, error) {
	if prospectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROSPECT_ID", "Prospect ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PROJECT_NAME", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PROJECT_NAME", "Project name cannot exceed 200 characters")
	}

	p := &Project{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProspectID:        prospectID,
		Name:              name,
		Budget:            decimal.Zero,
	}
	p.AddDomainEvent(NewProjectCreatedEvent(p.ID, prospectID, name))
	return p, nil
}

// Update changes the project's editable fields
func (p *Project) Update(name, planningNotes, closingSummary string, budget decimal.Decimal, startDate, estimatedEndDate *time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PROJECT_NAME", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PROJECT_NAME", "Project name cannot exceed 200 characters")
	}
	if budget.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}
	if startDate != nil && estimatedEndDate != nil && estimatedEndDate.Before(*startDate) {
		return shared.NewDomainError("INVALID_DATES", "Estimated end date cannot be before the start date")
	}
	p.Name = name
	p.PlanningNotes = strings.TrimSpace(planningNotes)
	p.ClosingSummary = strings.TrimSpace(closingSummary)
	p.Budget = budget
	p.StartDate = startDate
	p.EstimatedEndDate = estimatedEndDate
	p.Touch()
	return nil
}
