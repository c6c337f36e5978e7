package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/crm/backend/internal/domain/project"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProjectRepository implements project.ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a project by its ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProspect finds the project for a prospect, if one exists
func (r *GormProjectRepository) FindByProspect(ctx context.Context, prospectID uuid.UUID) (*project.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("prospect_id = ?", prospectID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds projects matching the filter, newest first. Ownership
// lives on the prospect, so scoping joins through it.
func (r *GormProjectRepository) FindAll(ctx context.Context, ownerID *uuid.UUID, filter shared.Filter) ([]project.Project, error) {
	var projectModels []models.ProjectModel
	query := r.scoped(ctx, ownerID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&projectModels).Error; err != nil {
		return nil, err
	}

	projects := make([]project.Project, len(projectModels))
	for i := range projectModels {
		projects[i] = *projectModels[i].ToDomain()
	}
	return projects, nil
}

// Count counts projects matching the filter
func (r *GormProjectRepository) Count(ctx context.Context, ownerID *uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.scoped(ctx, ownerID)
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a project
func (r *GormProjectRepository) Save(ctx context.Context, p *project.Project) error {
	model := models.ProjectModelFromDomain(p)
	return translateSaveError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete deletes a project and cascades to its children
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ProjectModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return deleteProjectTree(tx, tx.Model(&models.ProjectModel{}).Select("id").Where("id = ?", id))
	})
}

func (r *GormProjectRepository) scoped(ctx context.Context, ownerID *uuid.UUID) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.ProjectModel{}).
		Joins("JOIN prospects ON prospects.id = projects.prospect_id")
	if ownerID != nil {
		query = query.Where("prospects.owner_id = ? OR prospects.owner_id IS NULL", *ownerID)
	}
	return query
}

func (r *GormProjectRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order("projects." + filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("projects.created_at DESC")
	}

	return query
}

func (r *GormProjectRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("projects.name LIKE ? OR prospects.company LIKE ?", pattern, pattern)
	}
	return query
}

// deleteProjectTree removes every row belonging to the projects selected
// by projectIDs, then the projects themselves. projectIDs is a subquery
// selecting project IDs; callers run this inside a transaction.
func deleteProjectTree(tx *gorm.DB, projectIDs *gorm.DB) error {
	columnIDs := tx.Model(&models.KanbanColumnModel{}).
		Select("id").
		Where("project_id IN (?)", projectIDs)
	if err := tx.Delete(&models.KanbanTaskModel{}, "column_id IN (?)", columnIDs).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.KanbanColumnModel{}, "project_id IN (?)", projectIDs).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.DiagramModel{}, "project_id IN (?)", projectIDs).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.DeliverableModel{}, "project_id IN (?)", projectIDs).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.TeamMemberModel{}, "project_id IN (?)", projectIDs).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.NoteModel{}, "project_id IN (?)", projectIDs).Error; err != nil {
		return err
	}
	return tx.Delete(&models.ProjectModel{}, "id IN (?)", projectIDs).Error
}

// GormDeliverableRepository implements project.DeliverableRepository
// using GORM
type GormDeliverableRepository struct {
	db *gorm.DB
}

// NewGormDeliverableRepository creates a new GormDeliverableRepository
func NewGormDeliverableRepository(db *gorm.DB) *GormDeliverableRepository {
	return &GormDeliverableRepository{db: db}
}

// FindByID finds a deliverable by its ID
func (r *GormDeliverableRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Deliverable, error) {
	var model models.DeliverableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProject returns a project's deliverables ordered by due time,
// undated last
func (r *GormDeliverableRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]project.Deliverable, error) {
	var deliverableModels []models.DeliverableModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("due_at IS NULL, due_at ASC, created_at ASC").
		Find(&deliverableModels).Error; err != nil {
		return nil, err
	}

	deliverables := make([]project.Deliverable, len(deliverableModels))
	for i := range deliverableModels {
		deliverables[i] = *deliverableModels[i].ToDomain()
	}
	return deliverables, nil
}

// Save creates or updates a deliverable
func (r *GormDeliverableRepository) Save(ctx context.Context, deliverable *project.Deliverable) error {
	model := models.DeliverableModelFromDomain(deliverable)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a deliverable
func (r *GormDeliverableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DeliverableModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormTeamMemberRepository implements project.TeamMemberRepository
// using GORM
type GormTeamMemberRepository struct {
	db *gorm.DB
}

// NewGormTeamMemberRepository creates a new GormTeamMemberRepository
func NewGormTeamMemberRepository(db *gorm.DB) *GormTeamMemberRepository {
	return &GormTeamMemberRepository{db: db}
}

// FindByID finds a team assignment by its ID
func (r *GormTeamMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.TeamMember, error) {
	var model models.TeamMemberModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProject returns a project's team ordered by join time
func (r *GormTeamMemberRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]project.TeamMember, error) {
	var memberModels []models.TeamMemberModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("joined_at ASC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}

	members := make([]project.TeamMember, len(memberModels))
	for i := range memberModels {
		members[i] = *memberModels[i].ToDomain()
	}
	return members, nil
}

// FindMember finds the assignment of a worker to a project, if any
func (r *GormTeamMemberRepository) FindMember(ctx context.Context, projectID, workerID uuid.UUID) (*project.TeamMember, error) {
	var model models.TeamMemberModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND worker_id = ?", projectID, workerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a team assignment
func (r *GormTeamMemberRepository) Save(ctx context.Context, member *project.TeamMember) error {
	model := models.TeamMemberModelFromDomain(member)
	return translateSaveError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes a team assignment
func (r *GormTeamMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TeamMemberModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormNoteRepository implements project.NoteRepository using GORM
type GormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GormNoteRepository
func NewGormNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

// FindByID finds a note by its ID
func (r *GormNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Note, error) {
	var model models.NoteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProject returns a project's notes, newest first
func (r *GormNoteRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]project.Note, error) {
	var noteModels []models.NoteModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&noteModels).Error; err != nil {
		return nil, err
	}

	notes := make([]project.Note, len(noteModels))
	for i := range noteModels {
		notes[i] = *noteModels[i].ToDomain()
	}
	return notes, nil
}

// Save creates or updates a note
func (r *GormNoteRepository) Save(ctx context.Context, note *project.Note) error {
	model := models.NoteModelFromDomain(note)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a note
func (r *GormNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.NoteModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
