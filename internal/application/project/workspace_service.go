package project

import (
	"context"
	"errors"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/project"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WorkspaceService manages the working material of a project:
// deliverables, the assigned team and follow-up notes.
type WorkspaceService struct {
	deliverableRepo project.DeliverableRepository
	teamRepo        project.TeamMemberRepository
	noteRepo        project.NoteRepository
	projectRepo     project.ProjectRepository
	prospectRepo    crm.ProspectRepository
	workerRepo      crm.WorkerRepository
	logger          *zap.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(
	deliverableRepo project.DeliverableRepository,
	teamRepo project.TeamMemberRepository,
	noteRepo project.NoteRepository,
	projectRepo project.ProjectRepository,
	prospectRepo crm.ProspectRepository,
	workerRepo crm.WorkerRepository,
	logger *zap.Logger,
) *WorkspaceService {
	return &WorkspaceService{
		deliverableRepo: deliverableRepo,
		teamRepo:        teamRepo,
		noteRepo:        noteRepo,
		projectRepo:     projectRepo,
		prospectRepo:    prospectRepo,
		workerRepo:      workerRepo,
		logger:          logger,
	}
}

// CreateDeliverable adds a pending deliverable to a project
func (s *WorkspaceService) CreateDeliverable(ctx context.Context, principal identity.Principal, projectID uuid.UUID, req CreateDeliverableRequest) (*DeliverableResponse, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, err
	}
	deliverable, err := project.NewDeliverable(projectID, req.Title, req.Description, req.DueAt)
	if err != nil {
		return nil, err
	}
	if err := s.deliverableRepo.Save(ctx, deliverable); err != nil {
		return nil, err
	}
	resp := ToDeliverableResponse(deliverable)
	return &resp, nil
}

// ListDeliverables returns a project's deliverables, due first
func (s *WorkspaceService) ListDeliverables(ctx context.Context, principal identity.Principal, projectID uuid.UUID) ([]DeliverableResponse, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, err
	}
	deliverables, err := s.deliverableRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items := make([]DeliverableResponse, len(deliverables))
	for i := range deliverables {
		items[i] = ToDeliverableResponse(&deliverables[i])
	}
	return items, nil
}

// UpdateDeliverable edits a deliverable and optionally moves its status
func (s *WorkspaceService) UpdateDeliverable(ctx context.Context, principal identity.Principal, id uuid.UUID, req UpdateDeliverableRequest) (*DeliverableResponse, error) {
	deliverable, err := s.authorizeDeliverable(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if err := deliverable.Update(req.Title, req.Description, req.DueAt); err != nil {
		return nil, err
	}
	if req.Status != "" {
		if err := deliverable.SetStatus(project.DeliverableStatus(req.Status)); err != nil {
			return nil, err
		}
	}
	if err := s.deliverableRepo.Save(ctx, deliverable); err != nil {
		return nil, err
	}
	resp := ToDeliverableResponse(deliverable)
	return &resp, nil
}

// DeleteDeliverable removes a deliverable
func (s *WorkspaceService) DeleteDeliverable(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	deliverable, err := s.authorizeDeliverable(ctx, principal, id)
	if err != nil {
		return err
	}
	return s.deliverableRepo.Delete(ctx, deliverable.ID)
}

// AddTeamMember assigns a worker to the project team
func (s *WorkspaceService) AddTeamMember(ctx context.Context, principal identity.Principal, projectID uuid.UUID, req AddTeamMemberRequest) (*TeamMemberResponse, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, err
	}
	worker, err := s.workerRepo.FindByID(ctx, req.WorkerID)
	if err != nil {
		return nil, err
	}
	if existing, err := s.teamRepo.FindMember(ctx, projectID, req.WorkerID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Worker is already on this project")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	member, err := project.NewTeamMember(projectID, req.WorkerID, req.Role)
	if err != nil {
		return nil, err
	}
	if err := s.teamRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	resp := ToTeamMemberResponse(member)
	resp.WorkerName = worker.Name
	return &resp, nil
}

// ListTeam returns a project's team in join order, with worker names
// resolved
func (s *WorkspaceService) ListTeam(ctx context.Context, principal identity.Principal, projectID uuid.UUID) ([]TeamMemberResponse, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, err
	}
	members, err := s.teamRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items := make([]TeamMemberResponse, len(members))
	for i := range members {
		items[i] = ToTeamMemberResponse(&members[i])
		if worker, err := s.workerRepo.FindByID(ctx, members[i].WorkerID); err == nil {
			items[i].WorkerName = worker.Name
		}
	}
	return items, nil
}

// UpdateTeamMember changes a member's role on the project
func (s *WorkspaceService) UpdateTeamMember(ctx context.Context, principal identity.Principal, id uuid.UUID, req UpdateTeamMemberRequest) (*TeamMemberResponse, error) {
	member, err := s.authorizeTeamMember(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if err := member.SetRole(req.Role); err != nil {
		return nil, err
	}
	if err := s.teamRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	resp := ToTeamMemberResponse(member)
	return &resp, nil
}

// RemoveTeamMember takes a worker off the project team
func (s *WorkspaceService) RemoveTeamMember(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	member, err := s.authorizeTeamMember(ctx, principal, id)
	if err != nil {
		return err
	}
	return s.teamRepo.Delete(ctx, member.ID)
}

// CreateNote adds a note authored by the principal
func (s *WorkspaceService) CreateNote(ctx context.Context, principal identity.Principal, projectID uuid.UUID, req CreateNoteRequest) (*NoteResponse, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, err
	}
	note, err := project.NewNote(projectID, req.Body, principal.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}
	resp := ToNoteResponse(note)
	return &resp, nil
}

// ListNotes returns a project's notes, newest first
func (s *WorkspaceService) ListNotes(ctx context.Context, principal identity.Principal, projectID uuid.UUID) ([]NoteResponse, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items := make([]NoteResponse, len(notes))
	for i := range notes {
		items[i] = ToNoteResponse(&notes[i])
	}
	return items, nil
}

// UpdateNote replaces a note's body
func (s *WorkspaceService) UpdateNote(ctx context.Context, principal identity.Principal, id uuid.UUID, req UpdateNoteRequest) (*NoteResponse, error) {
	note, err := s.authorizeNote(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if err := note.Update(req.Body); err != nil {
		return nil, err
	}
	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}
	resp := ToNoteResponse(note)
	return &resp, nil
}

// DeleteNote removes a note
func (s *WorkspaceService) DeleteNote(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	note, err := s.authorizeNote(ctx, principal, id)
	if err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, note.ID)
}

func (s *WorkspaceService) authorizeProject(ctx context.Context, principal identity.Principal, projectID uuid.UUID) error {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	return authorizeViaProspect(ctx, s.prospectRepo, principal, proj.ProspectID)
}

func (s *WorkspaceService) authorizeDeliverable(ctx context.Context, principal identity.Principal, id uuid.UUID) (*project.Deliverable, error) {
	deliverable, err := s.deliverableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeProject(ctx, principal, deliverable.ProjectID); err != nil {
		return nil, err
	}
	return deliverable, nil
}

func (s *WorkspaceService) authorizeTeamMember(ctx context.Context, principal identity.Principal, id uuid.UUID) (*project.TeamMember, error) {
	member, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeProject(ctx, principal, member.ProjectID); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *WorkspaceService) authorizeNote(ctx context.Context, principal identity.Principal, id uuid.UUID) (*project.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeProject(ctx, principal, note.ProjectID); err != nil {
		return nil, err
	}
	return note, nil
}
