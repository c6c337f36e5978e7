package models

import (
	"time"

	"github.com/crm/backend/internal/domain/project"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectModel is the persistence model for the Project aggregate.
// One project per prospect; ownership is derived through the prospect
// and never stored here.
type ProjectModel struct {
	AggregateModel
	ProspectID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex;constraint:OnDelete:CASCADE"`
	Name              string          `gorm:"type:varchar(200);not null"`
	StartDate         *time.Time      `gorm:""`
	EstimatedEndDate  *time.Time      `gorm:""`
	Budget            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PlanningNotes     string          `gorm:"type:text"`
	ClosingSummary    string          `gorm:"type:text"`
	LegacyDiagramJSON string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project entity.
func (m *ProjectModel) ToDomain() *project.Project {
	return &project.Project{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ProspectID:        m.ProspectID,
		Name:              m.Name,
		StartDate:         m.StartDate,
		EstimatedEndDate:  m.EstimatedEndDate,
		Budget:            m.Budget,
		PlanningNotes:     m.PlanningNotes,
		ClosingSummary:    m.ClosingSummary,
		LegacyDiagramJSON: m.LegacyDiagramJSON,
	}
}

// FromDomain populates the persistence model from a domain Project entity.
func (m *ProjectModel) FromDomain(p *project.Project) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.ProspectID = p.ProspectID
	m.Name = p.Name
	m.StartDate = p.StartDate
	m.EstimatedEndDate = p.EstimatedEndDate
	m.Budget = p.Budget
	m.PlanningNotes = p.PlanningNotes
	m.ClosingSummary = p.ClosingSummary
	m.LegacyDiagramJSON = p.LegacyDiagramJSON
}

// ProjectModelFromDomain creates a new persistence model from a domain Project entity.
func ProjectModelFromDomain(p *project.Project) *ProjectModel {
	m := &ProjectModel{}
	m.FromDomain(p)
	return m
}

// DeliverableModel is the persistence model for the Deliverable entity.
type DeliverableModel struct {
	BaseModel
	ProjectID   uuid.UUID                 `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	Title       string                    `gorm:"type:varchar(200);not null"`
	Description string                    `gorm:"type:text"`
	Status      project.DeliverableStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	DueAt       *time.Time                `gorm:"index"`
}

// TableName returns the table name for GORM
func (DeliverableModel) TableName() string {
	return "deliverables"
}

// ToDomain converts the persistence model to a domain Deliverable entity.
func (m *DeliverableModel) ToDomain() *project.Deliverable {
	return &project.Deliverable{
		BaseEntity:  m.BaseModel.ToDomain(),
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status,
		DueAt:       m.DueAt,
	}
}

// FromDomain populates the persistence model from a domain Deliverable entity.
func (m *DeliverableModel) FromDomain(d *project.Deliverable) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.ProjectID = d.ProjectID
	m.Title = d.Title
	m.Description = d.Description
	m.Status = d.Status
	m.DueAt = d.DueAt
}

// DeliverableModelFromDomain creates a new persistence model from a domain Deliverable entity.
func DeliverableModelFromDomain(d *project.Deliverable) *DeliverableModel {
	m := &DeliverableModel{}
	m.FromDomain(d)
	return m
}

// TeamMemberModel is the persistence model for a project team
// assignment. The (project, worker) pair is unique.
type TeamMemberModel struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_worker,priority:1;constraint:OnDelete:CASCADE"`
	WorkerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_worker,priority:2;constraint:OnDelete:CASCADE"`
	Role      string    `gorm:"type:varchar(100)"`
	JoinedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TeamMemberModel) TableName() string {
	return "project_team_members"
}

// ToDomain converts the persistence model to a domain TeamMember entity.
func (m *TeamMemberModel) ToDomain() *project.TeamMember {
	return &project.TeamMember{
		BaseEntity: m.BaseModel.ToDomain(),
		ProjectID:  m.ProjectID,
		WorkerID:   m.WorkerID,
		Role:       m.Role,
		JoinedAt:   m.JoinedAt,
	}
}

// FromDomain populates the persistence model from a domain TeamMember entity.
func (m *TeamMemberModel) FromDomain(t *project.TeamMember) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.ProjectID = t.ProjectID
	m.WorkerID = t.WorkerID
	m.Role = t.Role
	m.JoinedAt = t.JoinedAt
}

// TeamMemberModelFromDomain creates a new persistence model from a domain TeamMember entity.
func TeamMemberModelFromDomain(t *project.TeamMember) *TeamMemberModel {
	m := &TeamMemberModel{}
	m.FromDomain(t)
	return m
}

// NoteModel is the persistence model for the project Note entity.
// CreatedBy is set null when the authoring account is removed.
type NoteModel struct {
	BaseModel
	ProjectID uuid.UUID  `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	Body      string     `gorm:"type:text;not null"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (NoteModel) TableName() string {
	return "project_notes"
}

// ToDomain converts the persistence model to a domain Note entity.
func (m *NoteModel) ToDomain() *project.Note {
	return &project.Note{
		BaseEntity: m.BaseModel.ToDomain(),
		ProjectID:  m.ProjectID,
		Body:       m.Body,
		CreatedBy:  m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Note entity.
func (m *NoteModel) FromDomain(n *project.Note) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.ProjectID = n.ProjectID
	m.Body = n.Body
	m.CreatedBy = n.CreatedBy
}

// NoteModelFromDomain creates a new persistence model from a domain Note entity.
func NoteModelFromDomain(n *project.Note) *NoteModel {
	m := &NoteModel{}
	m.FromDomain(n)
	return m
}

// KanbanColumnModel is the persistence model for a board column.
type KanbanColumnModel struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	Title     string    `gorm:"type:varchar(100);not null"`
	Icon      string    `gorm:"type:varchar(50)"`
	Position  int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (KanbanColumnModel) TableName() string {
	return "kanban_columns"
}

// ToDomain converts the persistence model to a domain KanbanColumn entity.
func (m *KanbanColumnModel) ToDomain() *project.KanbanColumn {
	return &project.KanbanColumn{
		BaseEntity: m.BaseModel.ToDomain(),
		ProjectID:  m.ProjectID,
		Title:      m.Title,
		Icon:       m.Icon,
		Position:   m.Position,
	}
}

// FromDomain populates the persistence model from a domain KanbanColumn entity.
func (m *KanbanColumnModel) FromDomain(c *project.KanbanColumn) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.ProjectID = c.ProjectID
	m.Title = c.Title
	m.Icon = c.Icon
	m.Position = c.Position
}

// KanbanColumnModelFromDomain creates a new persistence model from a domain KanbanColumn entity.
func KanbanColumnModelFromDomain(c *project.KanbanColumn) *KanbanColumnModel {
	m := &KanbanColumnModel{}
	m.FromDomain(c)
	return m
}

// KanbanTaskModel is the persistence model for a board task.
type KanbanTaskModel struct {
	BaseModel
	ColumnID    uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Position    int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (KanbanTaskModel) TableName() string {
	return "kanban_tasks"
}

// ToDomain converts the persistence model to a domain KanbanTask entity.
func (m *KanbanTaskModel) ToDomain() *project.KanbanTask {
	return &project.KanbanTask{
		BaseEntity:  m.BaseModel.ToDomain(),
		ColumnID:    m.ColumnID,
		Title:       m.Title,
		Description: m.Description,
		Position:    m.Position,
	}
}

// FromDomain populates the persistence model from a domain KanbanTask entity.
func (m *KanbanTaskModel) FromDomain(t *project.KanbanTask) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.ColumnID = t.ColumnID
	m.Title = t.Title
	m.Description = t.Description
	m.Position = t.Position
}

// KanbanTaskModelFromDomain creates a new persistence model from a domain KanbanTask entity.
func KanbanTaskModelFromDomain(t *project.KanbanTask) *KanbanTaskModel {
	m := &KanbanTaskModel{}
	m.FromDomain(t)
	return m
}

// DiagramModel is the persistence model for the Diagram entity. The
// graph payload is stored verbatim.
type DiagramModel struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	Title     string    `gorm:"type:varchar(200);not null"`
	GraphJSON string    `gorm:"type:text;not null"`
	Snapshot  string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DiagramModel) TableName() string {
	return "diagrams"
}

// ToDomain converts the persistence model to a domain Diagram entity.
func (m *DiagramModel) ToDomain() *project.Diagram {
	return &project.Diagram{
		BaseEntity: m.BaseModel.ToDomain(),
		ProjectID:  m.ProjectID,
		Title:      m.Title,
		GraphJSON:  m.GraphJSON,
		Snapshot:   m.Snapshot,
	}
}

// FromDomain populates the persistence model from a domain Diagram entity.
func (m *DiagramModel) FromDomain(d *project.Diagram) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.ProjectID = d.ProjectID
	m.Title = d.Title
	m.GraphJSON = d.GraphJSON
	m.Snapshot = d.Snapshot
}

// DiagramModelFromDomain creates a new persistence model from a domain Diagram entity.
func DiagramModelFromDomain(d *project.Diagram) *DiagramModel {
	m := &DiagramModel{}
	m.FromDomain(d)
	return m
}
