package project

import (
	"context"
	"errors"
	"strings"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/project"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ProjectService handles project lifecycle use cases. A project only
// exists for a prospect whose deal was won; everything else hangs off
// the project.
type ProjectService struct {
	projectRepo  project.ProjectRepository
	prospectRepo crm.ProspectRepository
	logger       *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo project.ProjectRepository,
	prospectRepo crm.ProspectRepository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		prospectRepo: prospectRepo,
		logger:       logger,
	}
}

// ownerScope returns the list scope for a principal: nil for admins,
// the principal's own ID otherwise.
func ownerScope(principal identity.Principal) *uuid.UUID {
	if principal.Admin {
		return nil
	}
	id := principal.UserID
	return &id
}

// GetOrCreate returns the project for a won prospect, creating it on
// first access. The default name is the prospect's company, falling
// back to the contact name, rendered in title case.
func (s *ProjectService) GetOrCreate(ctx context.Context, principal identity.Principal, prospectID uuid.UUID) (*ProjectResponse, error) {
	prospect, err := s.prospectRepo.FindByID(ctx, prospectID)
	if err != nil {
		return nil, err
	}
	if err := crm.Authorize(principal, prospect.GetOwnerID()); err != nil {
		return nil, err
	}
	if !prospect.IsWon() {
		return nil, shared.NewDomainError("INVALID_STATE", "Prospect must be won before a project can be opened")
	}

	existing, err := s.projectRepo.FindByProspect(ctx, prospectID)
	if err == nil {
		resp := ToProjectResponse(existing)
		return &resp, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	proj, err := project.NewProject(prospectID, defaultProjectName(prospect))
	if err != nil {
		return nil, err
	}
	if err := s.projectRepo.Save(ctx, proj); err != nil {
		return nil, err
	}

	s.logger.Info("Project opened for won prospect",
		zap.String("project_id", proj.ID.String()),
		zap.String("prospect_id", prospectID.String()))

	resp := ToProjectResponse(proj)
	return &resp, nil
}

// GetByID retrieves a project the principal may see
func (s *ProjectService) GetByID(ctx context.Context, principal identity.Principal, id uuid.UUID) (*ProjectResponse, error) {
	proj, err := s.authorize(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	resp := ToProjectResponse(proj)
	return &resp, nil
}

// List returns the projects visible to the principal
func (s *ProjectService) List(ctx context.Context, principal identity.Principal, filter shared.Filter) (*shared.Paginated[ProjectResponse], error) {
	scope := ownerScope(principal)
	projects, err := s.projectRepo.FindAll(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.projectRepo.Count(ctx, scope, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProjectResponse, len(projects))
	for i := range projects {
		items[i] = ToProjectResponse(&projects[i])
	}
	return &shared.Paginated[ProjectResponse]{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// ListClients returns the won prospects visible to the principal.
// Clients are not a separate entity; winning the deal is what turns a
// prospect into a client.
func (s *ProjectService) ListClients(ctx context.Context, principal identity.Principal, filter shared.Filter) (*shared.Paginated[ClientResponse], error) {
	scope := ownerScope(principal)
	prospects, err := s.prospectRepo.FindByState(ctx, scope, crm.ProspectStateWon, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ClientResponse, len(prospects))
	for i := range prospects {
		p := &prospects[i]
		items[i] = ClientResponse{
			ProspectID: p.ID,
			Name:       p.FullName,
			Company:    p.Company,
			Email:      p.Email,
			Phone:      p.Phone,
			WonAt:      p.UpdatedAt,
		}
		proj, err := s.projectRepo.FindByProspect(ctx, p.ID)
		if err == nil {
			items[i].ProjectID = &proj.ID
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	counts, err := s.prospectRepo.CountByState(ctx, scope)
	if err != nil {
		return nil, err
	}
	total := counts[crm.ProspectStateWon]
	return &shared.Paginated[ClientResponse]{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Update edits a project's details
func (s *ProjectService) Update(ctx context.Context, principal identity.Principal, id uuid.UUID, req UpdateProjectRequest) (*ProjectResponse, error) {
	proj, err := s.authorize(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	budget := proj.Budget
	if req.Budget != nil {
		budget = *req.Budget
	}
	if err := proj.Update(req.Name, req.PlanningNotes, req.ClosingSummary, budget, req.StartDate, req.EstimatedEndDate); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Save(ctx, proj); err != nil {
		return nil, err
	}
	resp := ToProjectResponse(proj)
	return &resp, nil
}

// Delete removes a project and everything under it. The prospect stays
// won; reopening it creates a fresh project.
func (s *ProjectService) Delete(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	proj, err := s.authorize(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, proj.ID); err != nil {
		return err
	}
	s.logger.Info("Project deleted", zap.String("project_id", id.String()))
	return nil
}

// authorize loads a project and checks the principal against the owner
// of the prospect behind it. Project ownership is always derived; the
// project row itself stores no owner.
func (s *ProjectService) authorize(ctx context.Context, principal identity.Principal, id uuid.UUID) (*project.Project, error) {
	proj, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeViaProspect(ctx, s.prospectRepo, principal, proj.ProspectID); err != nil {
		return nil, err
	}
	return proj, nil
}

// authorizeViaProspect loads the prospect behind a project and checks
// the principal against its owner.
func authorizeViaProspect(ctx context.Context, repo crm.ProspectRepository, principal identity.Principal, prospectID uuid.UUID) error {
	prospect, err := repo.FindByID(ctx, prospectID)
	if err != nil {
		return err
	}
	return crm.Authorize(principal, prospect.GetOwnerID())
}

var projectNameCaser = cases.Title(language.English)

func defaultProjectName(p *crm.Prospect) string {
	name := strings.TrimSpace(p.Company)
	if name == "" {
		name = strings.TrimSpace(p.FullName)
	}
	return projectNameCaser.String(strings.ToLower(name))
}
