package project

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/project"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByProspect(ctx context.Context, prospectID uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, prospectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, ownerID *uuid.UUID, filter shared.Filter) ([]project.Project, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) Count(ctx context.Context, ownerID *uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockKanbanRepository is a mock implementation of KanbanRepository
type MockKanbanRepository struct {
	mock.Mock
}

func (m *MockKanbanRepository) FindColumnByID(ctx context.Context, id uuid.UUID) (*project.KanbanColumn, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.KanbanColumn), args.Error(1)
}

func (m *MockKanbanRepository) FindColumns(ctx context.Context, projectID uuid.UUID) ([]project.KanbanColumn, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.KanbanColumn), args.Error(1)
}

func (m *MockKanbanRepository) FindTaskByID(ctx context.Context, id uuid.UUID) (*project.KanbanTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.KanbanTask), args.Error(1)
}

func (m *MockKanbanRepository) FindTasks(ctx context.Context, columnID uuid.UUID) ([]project.KanbanTask, error) {
	args := m.Called(ctx, columnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.KanbanTask), args.Error(1)
}

func (m *MockKanbanRepository) MaxTaskPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	args := m.Called(ctx, columnID)
	return args.Int(0), args.Error(1)
}

func (m *MockKanbanRepository) MaxColumnPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *MockKanbanRepository) ShiftTasks(ctx context.Context, columnID uuid.UUID, from, delta int) error {
	args := m.Called(ctx, columnID, from, delta)
	return args.Error(0)
}

func (m *MockKanbanRepository) SaveColumn(ctx context.Context, column *project.KanbanColumn) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockKanbanRepository) SaveTask(ctx context.Context, task *project.KanbanTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockKanbanRepository) ReorderColumns(ctx context.Context, projectID uuid.UUID, orderedColumnIDs []uuid.UUID) error {
	args := m.Called(ctx, projectID, orderedColumnIDs)
	return args.Error(0)
}

func (m *MockKanbanRepository) DeleteColumn(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockKanbanRepository) DeleteTask(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDiagramRepository is a mock implementation of DiagramRepository
type MockDiagramRepository struct {
	mock.Mock
}

func (m *MockDiagramRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Diagram, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Diagram), args.Error(1)
}

func (m *MockDiagramRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]project.Diagram, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Diagram), args.Error(1)
}

func (m *MockDiagramRepository) Save(ctx context.Context, diagram *project.Diagram) error {
	args := m.Called(ctx, diagram)
	return args.Error(0)
}

func (m *MockDiagramRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDeliverableRepository is a mock implementation of DeliverableRepository
type MockDeliverableRepository struct {
	mock.Mock
}

func (m *MockDeliverableRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Deliverable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Deliverable), args.Error(1)
}

func (m *MockDeliverableRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]project.Deliverable, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Deliverable), args.Error(1)
}

func (m *MockDeliverableRepository) Save(ctx context.Context, deliverable *project.Deliverable) error {
	args := m.Called(ctx, deliverable)
	return args.Error(0)
}

func (m *MockDeliverableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTeamMemberRepository is a mock implementation of TeamMemberRepository
type MockTeamMemberRepository struct {
	mock.Mock
}

func (m *MockTeamMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.TeamMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]project.TeamMember, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) FindMember(ctx context.Context, projectID, workerID uuid.UUID) (*project.TeamMember, error) {
	args := m.Called(ctx, projectID, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) Save(ctx context.Context, member *project.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTeamMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNoteRepository is a mock implementation of NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Note), args.Error(1)
}

func (m *MockNoteRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]project.Note, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Note), args.Error(1)
}

func (m *MockNoteRepository) Save(ctx context.Context, note *project.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProspectRepository is a mock implementation of crm.ProspectRepository
type MockProspectRepository struct {
	mock.Mock
}

func (m *MockProspectRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Prospect, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Prospect), args.Error(1)
}

func (m *MockProspectRepository) FindByEmail(ctx context.Context, email string) (*crm.Prospect, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Prospect), args.Error(1)
}

func (m *MockProspectRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockProspectRepository) FindAll(ctx context.Context, ownerID *uuid.UUID, filter shared.Filter) ([]crm.Prospect, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Prospect), args.Error(1)
}

func (m *MockProspectRepository) FindByState(ctx context.Context, ownerID *uuid.UUID, state crm.ProspectState, filter shared.Filter) ([]crm.Prospect, error) {
	args := m.Called(ctx, ownerID, state, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Prospect), args.Error(1)
}

func (m *MockProspectRepository) Count(ctx context.Context, ownerID *uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProspectRepository) CountByState(ctx context.Context, ownerID *uuid.UUID) (map[crm.ProspectState]int64, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[crm.ProspectState]int64), args.Error(1)
}

func (m *MockProspectRepository) CountCreatedSince(ctx context.Context, ownerID *uuid.UUID, state crm.ProspectState, since time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, state, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProspectRepository) Save(ctx context.Context, prospect *crm.Prospect) error {
	args := m.Called(ctx, prospect)
	return args.Error(0)
}

func (m *MockProspectRepository) SaveTags(ctx context.Context, prospect *crm.Prospect) error {
	args := m.Called(ctx, prospect)
	return args.Error(0)
}

func (m *MockProspectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWorkerRepository is a mock implementation of crm.WorkerRepository
type MockWorkerRepository struct {
	mock.Mock
}

func (m *MockWorkerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Worker), args.Error(1)
}

func (m *MockWorkerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Worker, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Worker), args.Error(1)
}

func (m *MockWorkerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkerRepository) Save(ctx context.Context, worker *crm.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockWorkerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeRenderer is a canned SnapshotRenderer
type fakeRenderer struct {
	pdf     []byte
	err     error
	gotHTML string
}

func (f *fakeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	f.gotHTML = html
	if f.err != nil {
		return nil, f.err
	}
	return f.pdf, nil
}
