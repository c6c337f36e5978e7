package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProspectRepository implements crm.ProspectRepository using GORM
type GormProspectRepository struct {
	db *gorm.DB
}

// NewGormProspectRepository creates a new GormProspectRepository
func NewGormProspectRepository(db *gorm.DB) *GormProspectRepository {
	return &GormProspectRepository{db: db}
}

// scopeOwner restricts a query to records owned by the given user or
// unowned. A nil owner applies no restriction (admin scope).
func scopeOwner(query *gorm.DB, ownerID *uuid.UUID) *gorm.DB {
	if ownerID == nil {
		return query
	}
	return query.Where("owner_id = ? OR owner_id IS NULL", *ownerID)
}

// FindByID finds a prospect by its ID with tags loaded
func (r *GormProspectRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Prospect, error) {
	var model models.ProspectModel
	if err := r.db.WithContext(ctx).Preload("Tags").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a prospect by its unique email
func (r *GormProspectRepository) FindByEmail(ctx context.Context, email string) (*crm.Prospect, error) {
	var model models.ProspectModel
	if err := r.db.WithContext(ctx).Preload("Tags").
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByEmail checks whether a prospect with the given email exists
func (r *GormProspectRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProspectModel{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds prospects matching the filter within the owner scope
func (r *GormProspectRepository) FindAll(ctx context.Context, ownerID *uuid.UUID, filter shared.Filter) ([]crm.Prospect, error) {
	var prospectModels []models.ProspectModel
	query := scopeOwner(r.db.WithContext(ctx).Model(&models.ProspectModel{}), ownerID)
	query = r.applyFilter(query, filter)

	if err := query.Preload("Tags").Find(&prospectModels).Error; err != nil {
		return nil, err
	}

	prospects := make([]crm.Prospect, len(prospectModels))
	for i := range prospectModels {
		prospects[i] = *prospectModels[i].ToDomain()
	}
	return prospects, nil
}

// FindByState finds prospects in the given state, newest first
func (r *GormProspectRepository) FindByState(ctx context.Context, ownerID *uuid.UUID, state crm.ProspectState, filter shared.Filter) ([]crm.Prospect, error) {
	var prospectModels []models.ProspectModel
	query := scopeOwner(r.db.WithContext(ctx).Model(&models.ProspectModel{}), ownerID).
		Where("state = ?", state)
	query = r.applyFilter(query, filter)

	if err := query.Preload("Tags").Find(&prospectModels).Error; err != nil {
		return nil, err
	}

	prospects := make([]crm.Prospect, len(prospectModels))
	for i := range prospectModels {
		prospects[i] = *prospectModels[i].ToDomain()
	}
	return prospects, nil
}

// Count counts prospects matching the filter within the owner scope
func (r *GormProspectRepository) Count(ctx context.Context, ownerID *uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := scopeOwner(r.db.WithContext(ctx).Model(&models.ProspectModel{}), ownerID)
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByState returns prospect counts grouped by pipeline state
func (r *GormProspectRepository) CountByState(ctx context.Context, ownerID *uuid.UUID) (map[crm.ProspectState]int64, error) {
	type stateCount struct {
		State crm.ProspectState
		Count int64
	}
	var rows []stateCount
	query := scopeOwner(r.db.WithContext(ctx).Model(&models.ProspectModel{}), ownerID)
	if err := query.Select("state, COUNT(*) as count").Group("state").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[crm.ProspectState]int64, len(rows))
	for _, row := range rows {
		counts[row.State] = row.Count
	}
	return counts, nil
}

// CountCreatedSince counts prospects created on or after the given
// time, optionally restricted to one state
func (r *GormProspectRepository) CountCreatedSince(ctx context.Context, ownerID *uuid.UUID, state crm.ProspectState, since time.Time) (int64, error) {
	var count int64
	query := scopeOwner(r.db.WithContext(ctx).Model(&models.ProspectModel{}), ownerID).
		Where("created_at >= ?", since)
	if state != "" {
		query = query.Where("state = ?", state)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a prospect
func (r *GormProspectRepository) Save(ctx context.Context, prospect *crm.Prospect) error {
	model := models.ProspectModelFromDomain(prospect)
	return translateSaveError(r.db.WithContext(ctx).Omit("Tags").Save(model).Error)
}

// SaveTags replaces a prospect's tag set with the tags carried on the
// entity
func (r *GormProspectRepository) SaveTags(ctx context.Context, prospect *crm.Prospect) error {
	model := models.ProspectModelFromDomain(prospect)
	tagModels := make([]models.TagModel, len(prospect.Tags))
	for i := range prospect.Tags {
		tagModels[i] = *models.TagModelFromDomain(&prospect.Tags[i])
	}
	return r.db.WithContext(ctx).Model(model).Association("Tags").Replace(tagModels)
}

// Delete deletes a prospect and cascades to its children
func (r *GormProspectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.ProspectModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		// Children that SQLite will not cascade for us without FK
		// enforcement; explicit deletes keep both backends honest.
		if err := tx.Exec("DELETE FROM prospect_tags WHERE prospect_model_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ProspectWorkerModel{}, "prospect_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.InteractionModel{}, "prospect_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ReminderModel{}, "prospect_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.AttachmentModel{}, "prospect_id = ?", id).Error; err != nil {
			return err
		}
		return deleteProjectTree(tx, tx.Model(&models.ProjectModel{}).Select("id").Where("prospect_id = ?", id))
	})
}

func (r *GormProspectRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormProspectRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("full_name LIKE ? OR email LIKE ? OR company LIKE ?",
			pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "state":
			query = query.Where("state = ?", value)
		case "interest":
			query = query.Where("interest = ?", value)
		case "unowned":
			if value == true {
				query = query.Where("owner_id IS NULL")
			}
		}
	}
	return query
}

// GormTagRepository implements crm.TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByID finds a tag by its ID
func (r *GormTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Tag, error) {
	var model models.TagModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a tag by its unique name
func (r *GormTagRepository) FindByName(ctx context.Context, name string) (*crm.Tag, error) {
	var model models.TagModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every tag ordered by name
func (r *GormTagRepository) FindAll(ctx context.Context) ([]crm.Tag, error) {
	var tagModels []models.TagModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tagModels).Error; err != nil {
		return nil, err
	}
	tags := make([]crm.Tag, len(tagModels))
	for i := range tagModels {
		tags[i] = *tagModels[i].ToDomain()
	}
	return tags, nil
}

// Save creates or updates a tag
func (r *GormTagRepository) Save(ctx context.Context, tag *crm.Tag) error {
	model := models.TagModelFromDomain(tag)
	return translateSaveError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete deletes a tag and its prospect associations
func (r *GormTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM prospect_tags WHERE tag_model_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.TagModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
