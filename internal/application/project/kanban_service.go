package project

import (
	"context"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/project"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KanbanService manages a project's board. Columns and tasks are
// ordered by integer positions; creation always appends, moves may
// leave gaps in the source column, and a reorder re-densifies the
// whole board in one transaction.
type KanbanService struct {
	kanbanRepo   project.KanbanRepository
	projectRepo  project.ProjectRepository
	prospectRepo crm.ProspectRepository
	logger       *zap.Logger
}

// NewKanbanService creates a new kanban service
func NewKanbanService(
	kanbanRepo project.KanbanRepository,
	projectRepo project.ProjectRepository,
	prospectRepo crm.ProspectRepository,
	logger *zap.Logger,
) *KanbanService {
	return &KanbanService{
		kanbanRepo:   kanbanRepo,
		projectRepo:  projectRepo,
		prospectRepo: prospectRepo,
		logger:       logger,
	}
}

// Board returns a project's columns with their tasks, both in position
// order
func (s *KanbanService) Board(ctx context.Context, principal identity.Principal, projectID uuid.UUID) ([]ColumnResponse, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, err
	}
	columns, err := s.kanbanRepo.FindColumns(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items := make([]ColumnResponse, len(columns))
	for i := range columns {
		items[i] = ToColumnResponse(&columns[i])
	}
	return items, nil
}

// CreateColumn appends a column at the end of the board
func (s *KanbanService) CreateColumn(ctx context.Context, principal identity.Principal, projectID uuid.UUID, req CreateColumnRequest) (*ColumnResponse, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, err
	}

	max, err := s.kanbanRepo.MaxColumnPosition(ctx, projectID)
	if err != nil {
		return nil, err
	}
	column, err := project.NewKanbanColumn(projectID, req.Title, req.Icon, max+1)
	if err != nil {
		return nil, err
	}
	if err := s.kanbanRepo.SaveColumn(ctx, column); err != nil {
		return nil, err
	}
	resp := ToColumnResponse(column)
	return &resp, nil
}

// UpdateColumn edits a column's title and icon
func (s *KanbanService) UpdateColumn(ctx context.Context, principal identity.Principal, columnID uuid.UUID, req UpdateColumnRequest) (*ColumnResponse, error) {
	column, err := s.authorizeColumn(ctx, principal, columnID)
	if err != nil {
		return nil, err
	}
	if err := column.Update(req.Title, req.Icon); err != nil {
		return nil, err
	}
	if err := s.kanbanRepo.SaveColumn(ctx, column); err != nil {
		return nil, err
	}
	resp := ToColumnResponse(column)
	return &resp, nil
}

// DeleteColumn removes a column and every task in it. Remaining
// columns keep their positions; the next reorder closes the gap.
func (s *KanbanService) DeleteColumn(ctx context.Context, principal identity.Principal, columnID uuid.UUID) error {
	column, err := s.authorizeColumn(ctx, principal, columnID)
	if err != nil {
		return err
	}
	return s.kanbanRepo.DeleteColumn(ctx, column.ID)
}

// ReorderColumns applies the given column order atomically: each listed
// column's position becomes its index in the list. Ids that do not
// belong to the project, and repeats, are ignored; unlisted columns
// keep their positions.
func (s *KanbanService) ReorderColumns(ctx context.Context, principal identity.Principal, projectID uuid.UUID, req ReorderColumnsRequest) error {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return err
	}

	columns, err := s.kanbanRepo.FindColumns(ctx, projectID)
	if err != nil {
		return err
	}
	known := make(map[uuid.UUID]bool, len(columns))
	for i := range columns {
		known[columns[i].ID] = true
	}
	ordered := make([]uuid.UUID, 0, len(columns))
	seen := make(map[uuid.UUID]bool, len(req.OrderedIDs))
	for _, id := range req.OrderedIDs {
		if !known[id] || seen[id] {
			continue
		}
		seen[id] = true
		ordered = append(ordered, id)
	}
	if len(ordered) == 0 {
		return nil
	}

	if err := s.kanbanRepo.ReorderColumns(ctx, projectID, ordered); err != nil {
		return err
	}
	s.logger.Info("Board reordered",
		zap.String("project_id", projectID.String()),
		zap.Int("columns", len(ordered)))
	return nil
}

// CreateTask appends a task at the end of a column
func (s *KanbanService) CreateTask(ctx context.Context, principal identity.Principal, columnID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error) {
	column, err := s.authorizeColumn(ctx, principal, columnID)
	if err != nil {
		return nil, err
	}

	max, err := s.kanbanRepo.MaxTaskPosition(ctx, column.ID)
	if err != nil {
		return nil, err
	}
	task, err := project.NewKanbanTask(column.ID, req.Title, req.Description, max+1)
	if err != nil {
		return nil, err
	}
	if err := s.kanbanRepo.SaveTask(ctx, task); err != nil {
		return nil, err
	}
	resp := ToTaskResponse(task)
	return &resp, nil
}

// UpdateTask edits a task's title and description
func (s *KanbanService) UpdateTask(ctx context.Context, principal identity.Principal, taskID uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error) {
	task, err := s.authorizeTask(ctx, principal, taskID)
	if err != nil {
		return nil, err
	}
	if err := task.Update(req.Title, req.Description); err != nil {
		return nil, err
	}
	if err := s.kanbanRepo.SaveTask(ctx, task); err != nil {
		return nil, err
	}
	resp := ToTaskResponse(task)
	return &resp, nil
}

// MoveTask moves a task to a destination column. A given position
// shifts the destination's later tasks down by one; no position
// appends at the end. The source column is not renumbered, so it may
// be left sparse until the next reorder.
func (s *KanbanService) MoveTask(ctx context.Context, principal identity.Principal, projectID uuid.UUID, req MoveTaskRequest) (*TaskResponse, error) {
	if err := s.authorizeProject(ctx, principal, projectID); err != nil {
		return nil, err
	}

	task, err := s.kanbanRepo.FindTaskByID(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}
	dest, err := s.kanbanRepo.FindColumnByID(ctx, req.DestinationColumnID)
	if err != nil {
		return nil, err
	}
	if dest.ProjectID != projectID {
		return nil, shared.NewDomainError("INVALID_COLUMN", "Destination column belongs to another project")
	}

	var position int
	if req.Position != nil {
		position = *req.Position
	} else {
		max, err := s.kanbanRepo.MaxTaskPosition(ctx, dest.ID)
		if err != nil {
			return nil, err
		}
		position = max + 1
	}

	// Validate before shifting so a rejected move leaves the
	// destination column untouched.
	if err := task.MoveTo(dest.ID, position); err != nil {
		return nil, err
	}
	if req.Position != nil {
		if err := s.kanbanRepo.ShiftTasks(ctx, dest.ID, position, 1); err != nil {
			return nil, err
		}
	}
	if err := s.kanbanRepo.SaveTask(ctx, task); err != nil {
		return nil, err
	}
	resp := ToTaskResponse(task)
	return &resp, nil
}

// DeleteTask removes a task. The column is not renumbered.
func (s *KanbanService) DeleteTask(ctx context.Context, principal identity.Principal, taskID uuid.UUID) error {
	task, err := s.authorizeTask(ctx, principal, taskID)
	if err != nil {
		return err
	}
	return s.kanbanRepo.DeleteTask(ctx, task.ID)
}

func (s *KanbanService) authorizeProject(ctx context.Context, principal identity.Principal, projectID uuid.UUID) error {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	return authorizeViaProspect(ctx, s.prospectRepo, principal, proj.ProspectID)
}

func (s *KanbanService) authorizeColumn(ctx context.Context, principal identity.Principal, columnID uuid.UUID) (*project.KanbanColumn, error) {
	column, err := s.kanbanRepo.FindColumnByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeProject(ctx, principal, column.ProjectID); err != nil {
		return nil, err
	}
	return column, nil
}

func (s *KanbanService) authorizeTask(ctx context.Context, principal identity.Principal, taskID uuid.UUID) (*project.KanbanTask, error) {
	task, err := s.kanbanRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeColumn(ctx, principal, task.ColumnID); err != nil {
		return nil, err
	}
	return task, nil
}
