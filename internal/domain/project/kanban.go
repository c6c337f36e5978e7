package project

import (
	"strings"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// KanbanColumn is a column on a project's task board. Columns within a
// project are ordered by Position; positions start at 0 and are kept
// dense by reordering.
type KanbanColumn struct {
	shared.BaseEntity
	ProjectID uuid.UUID
	Title     string
	Icon      string
	Position  int
	Tasks     []KanbanTask `gorm:"-"`
}

// NewKanbanColumn creates a column at the given position
func NewKanbanColumn(projectID uuid.UUID, title, icon string, position int) (*KanbanColumn, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_COLUMN_TITLE", "Column title cannot be empty")
	}
	if len(title) > 100 {
		return nil, shared.NewDomainError("INVALID_COLUMN_TITLE", "Column title cannot exceed 100 characters")
	}
	if position < 0 {
		return nil, shared.NewDomainError("INVALID_POSITION", "Position cannot be negative")
	}
	return &KanbanColumn{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  projectID,
		Title:      title,
		Icon:       strings.TrimSpace(icon),
		Position:   position,
	}, nil
}

// Update changes the column's title and icon
func (c *KanbanColumn) Update(title, icon string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_COLUMN_TITLE", "Column title cannot be empty")
	}
	if len(title) > 100 {
		return shared.NewDomainError("INVALID_COLUMN_TITLE", "Column title cannot exceed 100 characters")
	}
	c.Title = title
	c.Icon = strings.TrimSpace(icon)
	c.Touch()
	return nil
}

// SetPosition moves the column to the given position
func (c *KanbanColumn) SetPosition(position int) error {
	if position < 0 {
		return shared.NewDomainError("INVALID_POSITION", "Position cannot be negative")
	}
	c.Position = position
	c.Touch()
	return nil
}

// KanbanTask is a card within a column, ordered by Position. A task's
// position is dense within its column after a reorder; moving a task to
// another column may leave a gap behind, which the next reorder closes.
type KanbanTask struct {
	shared.BaseEntity
	ColumnID    uuid.UUID
	Title       string
	Description string
	Position    int
}

// NewKanbanTask creates a task at the given position in a column
func NewKanbanTask(columnID uuid.UUID, title, description string, position int) (*KanbanTask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TASK_TITLE", "Task title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TASK_TITLE", "Task title cannot exceed 200 characters")
	}
	if position < 0 {
		return nil, shared.NewDomainError("INVALID_POSITION", "Position cannot be negative")
	}
	return &KanbanTask{
		BaseEntity:  shared.NewBaseEntity(),
		ColumnID:    columnID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Position:    position,
	}, nil
}

// Update changes the task's title and description
func (t *KanbanTask) Update(title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TASK_TITLE", "Task title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TASK_TITLE", "Task title cannot exceed 200 characters")
	}
	t.Title = title
	t.Description = strings.TrimSpace(description)
	t.Touch()
	return nil
}

// MoveTo places the task in a column at the given position
func (t *KanbanTask) MoveTo(columnID uuid.UUID, position int) error {
	if columnID == uuid.Nil {
		return shared.NewDomainError("INVALID_COLUMN_ID", "Column ID is required")
	}
	if position < 0 {
		return shared.NewDomainError("INVALID_POSITION", "Position cannot be negative")
	}
	t.ColumnID = columnID
	t.Position = position
	t.Touch()
	return nil
}
