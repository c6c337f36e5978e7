package project

import (
	"context"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/project"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type workspaceFixture struct {
	service         *WorkspaceService
	deliverableRepo *MockDeliverableRepository
	teamRepo        *MockTeamMemberRepository
	noteRepo        *MockNoteRepository
	workerRepo      *MockWorkerRepository
	project         *project.Project
}

func newWorkspaceFixture(t *testing.T, owner uuid.UUID) *workspaceFixture {
	t.Helper()
	prospect := wonProspect(t, owner, "Acme")
	proj, err := project.NewProject(prospect.ID, "Acme")
	require.NoError(t, err)

	deliverableRepo := new(MockDeliverableRepository)
	teamRepo := new(MockTeamMemberRepository)
	noteRepo := new(MockNoteRepository)
	projectRepo := new(MockProjectRepository)
	prospectRepo := new(MockProspectRepository)
	workerRepo := new(MockWorkerRepository)
	projectRepo.On("FindByID", mock.Anything, proj.ID).Return(proj, nil)
	prospectRepo.On("FindByID", mock.Anything, prospect.ID).Return(prospect, nil)

	return &workspaceFixture{
		service: NewWorkspaceService(
			deliverableRepo, teamRepo, noteRepo,
			projectRepo, prospectRepo, workerRepo,
			zap.NewNop(),
		),
		deliverableRepo: deliverableRepo,
		teamRepo:        teamRepo,
		noteRepo:        noteRepo,
		workerRepo:      workerRepo,
		project:         proj,
	}
}

func TestWorkspaceService_Deliverables(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending deliverable", func(t *testing.T) {
		principal := userPrincipal()
		f := newWorkspaceFixture(t, principal.UserID)
		due := time.Now().Add(72 * time.Hour)
		f.deliverableRepo.On("Save", ctx, mock.AnythingOfType("*project.Deliverable")).Return(nil)

		resp, err := f.service.CreateDeliverable(ctx, principal, f.project.ID, CreateDeliverableRequest{
			Title: "Kickoff deck",
			DueAt: &due,
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.False(t, resp.Overdue)
	})

	t.Run("moves status through the update", func(t *testing.T) {
		principal := userPrincipal()
		f := newWorkspaceFixture(t, principal.UserID)
		deliverable, err := project.NewDeliverable(f.project.ID, "Kickoff deck", "", nil)
		require.NoError(t, err)
		f.deliverableRepo.On("FindByID", ctx, deliverable.ID).Return(deliverable, nil)
		f.deliverableRepo.On("Save", ctx, deliverable).Return(nil)

		resp, err := f.service.UpdateDeliverable(ctx, principal, deliverable.ID, UpdateDeliverableRequest{
			Title:  "Kickoff deck",
			Status: "DONE",
		})

		require.NoError(t, err)
		assert.Equal(t, "DONE", resp.Status)
	})

	t.Run("flags an overdue deliverable", func(t *testing.T) {
		principal := userPrincipal()
		f := newWorkspaceFixture(t, principal.UserID)
		past := time.Now().Add(-24 * time.Hour)
		deliverable, err := project.NewDeliverable(f.project.ID, "Late deck", "", &past)
		require.NoError(t, err)
		f.deliverableRepo.On("FindByProject", ctx, f.project.ID).Return([]project.Deliverable{*deliverable}, nil)

		items, err := f.service.ListDeliverables(ctx, principal, f.project.ID)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].Overdue)
	})
}

func TestWorkspaceService_Team(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns a worker with their name resolved", func(t *testing.T) {
		principal := userPrincipal()
		f := newWorkspaceFixture(t, principal.UserID)
		worker, err := crm.NewWorker("Marta Ruiz", "Engineer", "marta@example.com", "")
		require.NoError(t, err)
		f.workerRepo.On("FindByID", ctx, worker.ID).Return(worker, nil)
		f.teamRepo.On("FindMember", ctx, f.project.ID, worker.ID).Return(nil, shared.ErrNotFound)
		f.teamRepo.On("Save", ctx, mock.AnythingOfType("*project.TeamMember")).Return(nil)

		resp, err := f.service.AddTeamMember(ctx, principal, f.project.ID, AddTeamMemberRequest{
			WorkerID: worker.ID,
			Role:     "Lead",
		})

		require.NoError(t, err)
		assert.Equal(t, "Marta Ruiz", resp.WorkerName)
		assert.Equal(t, "Lead", resp.Role)
	})

	t.Run("rejects assigning the same worker twice", func(t *testing.T) {
		principal := userPrincipal()
		f := newWorkspaceFixture(t, principal.UserID)
		worker, err := crm.NewWorker("Marta Ruiz", "Engineer", "marta@example.com", "")
		require.NoError(t, err)
		existing, err := project.NewTeamMember(f.project.ID, worker.ID, "Lead")
		require.NoError(t, err)
		f.workerRepo.On("FindByID", ctx, worker.ID).Return(worker, nil)
		f.teamRepo.On("FindMember", ctx, f.project.ID, worker.ID).Return(existing, nil)

		_, err = f.service.AddTeamMember(ctx, principal, f.project.ID, AddTeamMemberRequest{WorkerID: worker.ID})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		f.teamRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestWorkspaceService_Notes(t *testing.T) {
	ctx := context.Background()

	t.Run("records the author on a new note", func(t *testing.T) {
		principal := userPrincipal()
		f := newWorkspaceFixture(t, principal.UserID)
		f.noteRepo.On("Save", ctx, mock.AnythingOfType("*project.Note")).Return(nil)

		resp, err := f.service.CreateNote(ctx, principal, f.project.ID, CreateNoteRequest{Body: "Client wants weekly calls"})

		require.NoError(t, err)
		require.NotNil(t, resp.CreatedBy)
		assert.Equal(t, principal.UserID, *resp.CreatedBy)
	})

	t.Run("denies access through another user's prospect", func(t *testing.T) {
		principal := userPrincipal()
		f := newWorkspaceFixture(t, uuid.New())

		_, err := f.service.ListNotes(ctx, principal, f.project.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}
