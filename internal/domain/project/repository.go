package project

import (
	"context"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	// FindByID finds a project by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// FindByProspect finds the project for a prospect, if one exists
	FindByProspect(ctx context.Context, prospectID uuid.UUID) (*Project, error)

	// FindAll finds projects matching the filter, newest first, scoped
	// to projects owned by ownerID or unowned when non-nil
	FindAll(ctx context.Context, ownerID *uuid.UUID, filter shared.Filter) ([]Project, error)

	// Count counts projects matching the filter
	Count(ctx context.Context, ownerID *uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a project
	Save(ctx context.Context, project *Project) error

	// Delete deletes a project and cascades to its children
	Delete(ctx context.Context, id uuid.UUID) error
}

// DeliverableRepository defines the interface for deliverable persistence
type DeliverableRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Deliverable, error)

	// FindByProject returns a project's deliverables ordered by due
	// time, undated last
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]Deliverable, error)

	Save(ctx context.Context, deliverable *Deliverable) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TeamMemberRepository defines the interface for team assignment
// persistence
type TeamMemberRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TeamMember, error)

	// FindByProject returns a project's team ordered by join time
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]TeamMember, error)

	// FindMember finds the assignment of a worker to a project, if any
	FindMember(ctx context.Context, projectID, workerID uuid.UUID) (*TeamMember, error)

	Save(ctx context.Context, member *TeamMember) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NoteRepository defines the interface for project note persistence
type NoteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Note, error)

	// FindByProject returns a project's notes, newest first
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]Note, error)

	Save(ctx context.Context, note *Note) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// KanbanRepository defines the interface for board persistence. Write
// operations that touch multiple rows run atomically.
type KanbanRepository interface {
	// FindColumnByID finds a column by its ID
	FindColumnByID(ctx context.Context, id uuid.UUID) (*KanbanColumn, error)

	// FindColumns returns a project's columns ordered by position, with
	// their tasks loaded in position order
	FindColumns(ctx context.Context, projectID uuid.UUID) ([]KanbanColumn, error)

	// FindTaskByID finds a task by its ID
	FindTaskByID(ctx context.Context, id uuid.UUID) (*KanbanTask, error)

	// FindTasks returns a column's tasks ordered by position
	FindTasks(ctx context.Context, columnID uuid.UUID) ([]KanbanTask, error)

	// MaxTaskPosition returns the highest task position in a column, or
	// -1 for an empty column
	MaxTaskPosition(ctx context.Context, columnID uuid.UUID) (int, error)

	// MaxColumnPosition returns the highest column position in a
	// project, or -1 for an empty board
	MaxColumnPosition(ctx context.Context, projectID uuid.UUID) (int, error)

	// ShiftTasks adjusts by delta the position of every task in the
	// column with position >= from
	ShiftTasks(ctx context.Context, columnID uuid.UUID, from, delta int) error

	// SaveColumn creates or updates a column
	SaveColumn(ctx context.Context, column *KanbanColumn) error

	// SaveTask creates or updates a task
	SaveTask(ctx context.Context, task *KanbanTask) error

	// ReorderColumns atomically applies the given column order and
	// re-densifies task positions within every column of the project
	ReorderColumns(ctx context.Context, projectID uuid.UUID, orderedColumnIDs []uuid.UUID) error

	// DeleteColumn deletes a column and its tasks
	DeleteColumn(ctx context.Context, id uuid.UUID) error

	// DeleteTask deletes a task
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// DiagramRepository defines the interface for diagram persistence
type DiagramRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Diagram, error)

	// FindByProject returns a project's diagrams, newest first
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]Diagram, error)

	Save(ctx context.Context, diagram *Diagram) error
	Delete(ctx context.Context, id uuid.UUID) error
}
