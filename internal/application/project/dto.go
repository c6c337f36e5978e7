package project

import (
	"encoding/json"
	"time"

	"github.com/crm/backend/internal/domain/project"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Name             string           `json:"name" binding:"required,max=200"`
	PlanningNotes    string           `json:"planning_notes"`
	ClosingSummary   string           `json:"closing_summary"`
	Budget           *decimal.Decimal `json:"budget"`
	StartDate        *time.Time       `json:"start_date"`
	EstimatedEndDate *time.Time       `json:"estimated_end_date"`
}

// ProjectResponse is the API view of a project
type ProjectResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProspectID        uuid.UUID       `json:"prospect_id"`
	Name              string          `json:"name"`
	StartDate         *time.Time      `json:"start_date"`
	EstimatedEndDate  *time.Time      `json:"estimated_end_date"`
	Budget            decimal.Decimal `json:"budget"`
	PlanningNotes     string          `json:"planning_notes"`
	ClosingSummary    string          `json:"closing_summary"`
	LegacyDiagramJSON string          `json:"legacy_diagram_json,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ClientResponse is the API view of a won prospect acting as a client
type ClientResponse struct {
	ProspectID uuid.UUID  `json:"prospect_id"`
	ProjectID  *uuid.UUID `json:"project_id"`
	Name       string     `json:"name"`
	Company    string     `json:"company"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	WonAt      time.Time  `json:"won_at"`
}

// CreateDeliverableRequest adds a deliverable to a project
type CreateDeliverableRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at"`
}

// UpdateDeliverableRequest edits a deliverable
type UpdateDeliverableRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at"`
	Status      string     `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS DONE"`
}

// DeliverableResponse is the API view of a deliverable
type DeliverableResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueAt       *time.Time `json:"due_at"`
	Overdue     bool       `json:"overdue"`
}

// AddTeamMemberRequest assigns a worker to the project team
type AddTeamMemberRequest struct {
	WorkerID uuid.UUID `json:"worker_id" binding:"required"`
	Role     string    `json:"role" binding:"max=100"`
}

// UpdateTeamMemberRequest changes a member's role label
type UpdateTeamMemberRequest struct {
	Role string `json:"role" binding:"max=100"`
}

// TeamMemberResponse is the API view of a team assignment
type TeamMemberResponse struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"project_id"`
	WorkerID   uuid.UUID `json:"worker_id"`
	WorkerName string    `json:"worker_name,omitempty"`
	Role       string    `json:"role"`
	JoinedAt   time.Time `json:"joined_at"`
}

// CreateNoteRequest adds a follow-up note to a project
type CreateNoteRequest struct {
	Body string `json:"body" binding:"required"`
}

// UpdateNoteRequest edits a note
type UpdateNoteRequest struct {
	Body string `json:"body" binding:"required"`
}

// NoteResponse is the API view of a project note
type NoteResponse struct {
	ID        uuid.UUID  `json:"id"`
	ProjectID uuid.UUID  `json:"project_id"`
	Body      string     `json:"body"`
	CreatedBy *uuid.UUID `json:"created_by"`
	NotedAt   time.Time  `json:"noted_at"`
}

// CreateColumnRequest adds a kanban column to a project board
type CreateColumnRequest struct {
	Title string `json:"title" binding:"required,max=100"`
	Icon  string `json:"icon" binding:"max=50"`
}

// UpdateColumnRequest edits a column's title and icon
type UpdateColumnRequest struct {
	Title string `json:"title" binding:"required,max=100"`
	Icon  string `json:"icon" binding:"max=50"`
}

// CreateTaskRequest adds a task to a column
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
}

// UpdateTaskRequest edits a task
type UpdateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
}

// MoveTaskRequest moves a task to a destination column. Position is
// optional; a missing position appends at the end of the destination.
type MoveTaskRequest struct {
	TaskID              uuid.UUID `json:"task_id" binding:"required"`
	DestinationColumnID uuid.UUID `json:"destination_column_id" binding:"required"`
	Position            *int      `json:"position" binding:"omitempty,min=0"`
}

// ReorderColumnsRequest re-sequences a project's columns
type ReorderColumnsRequest struct {
	OrderedIDs []uuid.UUID `json:"ordered_ids" binding:"required,min=1"`
}

// TaskResponse is the API view of a kanban task
type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	ColumnID    uuid.UUID `json:"column_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
}

// ColumnResponse is the API view of a kanban column with its tasks
type ColumnResponse struct {
	ID        uuid.UUID      `json:"id"`
	ProjectID uuid.UUID      `json:"project_id"`
	Title     string         `json:"title"`
	Icon      string         `json:"icon"`
	Position  int            `json:"position"`
	Tasks     []TaskResponse `json:"tasks"`
}

// SaveDiagramRequest creates or overwrites a diagram. A known ID means
// overwrite in place; absent or unknown means create.
type SaveDiagramRequest struct {
	ID        *uuid.UUID      `json:"id"`
	Title     string          `json:"title" binding:"max=200"`
	GraphJSON json.RawMessage `json:"graph_json" binding:"required"`
	Snapshot  string          `json:"snapshot"`
}

// DiagramResponse is the API view of a diagram, with the stored graph
// decoded back into a structured payload
type DiagramResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProjectID uuid.UUID       `json:"project_id"`
	Title     string          `json:"title"`
	GraphJSON json.RawMessage `json:"graph_json"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToProjectResponse converts a domain project
func ToProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:                p.ID,
		ProspectID:        p.ProspectID,
		Name:              p.Name,
		StartDate:         p.StartDate,
		EstimatedEndDate:  p.EstimatedEndDate,
		Budget:            p.Budget,
		PlanningNotes:     p.PlanningNotes,
		ClosingSummary:    p.ClosingSummary,
		LegacyDiagramJSON: p.LegacyDiagramJSON,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ToDeliverableResponse converts a domain deliverable
func ToDeliverableResponse(d *project.Deliverable) DeliverableResponse {
	return DeliverableResponse{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		Title:       d.Title,
		Description: d.Description,
		Status:      string(d.Status),
		DueAt:       d.DueAt,
		Overdue:     d.IsOverdue(time.Now()),
	}
}

// ToTeamMemberResponse converts a domain team assignment
func ToTeamMemberResponse(m *project.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		WorkerID:  m.WorkerID,
		Role:      m.Role,
		JoinedAt:  m.JoinedAt,
	}
}

// ToNoteResponse converts a domain note
func ToNoteResponse(n *project.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		ProjectID: n.ProjectID,
		Body:      n.Body,
		CreatedBy: n.CreatedBy,
		NotedAt:   n.CreatedAt,
	}
}

// ToTaskResponse converts a domain kanban task
func ToTaskResponse(t *project.KanbanTask) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		ColumnID:    t.ColumnID,
		Title:       t.Title,
		Description: t.Description,
		Position:    t.Position,
	}
}

// ToColumnResponse converts a domain kanban column with its tasks
func ToColumnResponse(c *project.KanbanColumn) ColumnResponse {
	tasks := make([]TaskResponse, len(c.Tasks))
	for i := range c.Tasks {
		tasks[i] = ToTaskResponse(&c.Tasks[i])
	}
	return ColumnResponse{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		Title:     c.Title,
		Icon:      c.Icon,
		Position:  c.Position,
		Tasks:     tasks,
	}
}

// ToDiagramResponse converts a domain diagram
func ToDiagramResponse(d *project.Diagram) DiagramResponse {
	return DiagramResponse{
		ID:        d.ID,
		ProjectID: d.ProjectID,
		Title:     d.Title,
		GraphJSON: json.RawMessage(d.GraphJSON),
		UpdatedAt: d.UpdatedAt,
	}
}
