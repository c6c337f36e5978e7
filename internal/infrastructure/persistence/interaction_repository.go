package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInteractionRepository implements crm.InteractionRepository using GORM
type GormInteractionRepository struct {
	db *gorm.DB
}

// NewGormInteractionRepository creates a new GormInteractionRepository
func NewGormInteractionRepository(db *gorm.DB) *GormInteractionRepository {
	return &GormInteractionRepository{db: db}
}

// FindByID finds an interaction by its ID
func (r *GormInteractionRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Interaction, error) {
	var model models.InteractionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProspect returns a prospect's interactions, most recent first
func (r *GormInteractionRepository) FindByProspect(ctx context.Context, prospectID uuid.UUID, filter shared.Filter) ([]crm.Interaction, error) {
	var interactionModels []models.InteractionModel
	query := r.db.WithContext(ctx).
		Where("prospect_id = ?", prospectID).
		Order("occurred_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Find(&interactionModels).Error; err != nil {
		return nil, err
	}

	interactions := make([]crm.Interaction, len(interactionModels))
	for i := range interactionModels {
		interactions[i] = *interactionModels[i].ToDomain()
	}
	return interactions, nil
}

// CountSince counts interactions recorded on or after the given time,
// scoped through the parent prospect's owner
func (r *GormInteractionRepository) CountSince(ctx context.Context, ownerID *uuid.UUID, since time.Time) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.InteractionModel{}).
		Joins("JOIN prospects ON prospects.id = interactions.prospect_id").
		Where("interactions.occurred_at >= ?", since)
	if ownerID != nil {
		query = query.Where("prospects.owner_id = ? OR prospects.owner_id IS NULL", *ownerID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// LatestByProspect returns the most recent interaction time per
// prospect within the owner scope
func (r *GormInteractionRepository) LatestByProspect(ctx context.Context, ownerID *uuid.UUID) (map[uuid.UUID]time.Time, error) {
	type latestRow struct {
		ProspectID uuid.UUID
		Latest     time.Time
	}
	var rows []latestRow
	query := r.db.WithContext(ctx).
		Model(&models.InteractionModel{}).
		Select("interactions.prospect_id, MAX(interactions.occurred_at) as latest").
		Joins("JOIN prospects ON prospects.id = interactions.prospect_id").
		Group("interactions.prospect_id")
	if ownerID != nil {
		query = query.Where("prospects.owner_id = ? OR prospects.owner_id IS NULL", *ownerID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	latest := make(map[uuid.UUID]time.Time, len(rows))
	for _, row := range rows {
		latest[row.ProspectID] = row.Latest
	}
	return latest, nil
}

// Save creates or updates an interaction
func (r *GormInteractionRepository) Save(ctx context.Context, interaction *crm.Interaction) error {
	model := models.InteractionModelFromDomain(interaction)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an interaction
func (r *GormInteractionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InteractionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormReminderRepository implements crm.ReminderRepository using GORM
type GormReminderRepository struct {
	db *gorm.DB
}

// NewGormReminderRepository creates a new GormReminderRepository
func NewGormReminderRepository(db *gorm.DB) *GormReminderRepository {
	return &GormReminderRepository{db: db}
}

// FindByID finds a reminder by its ID
func (r *GormReminderRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Reminder, error) {
	var model models.ReminderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProspect returns a prospect's reminders ordered by due time
func (r *GormReminderRepository) FindByProspect(ctx context.Context, prospectID uuid.UUID) ([]crm.Reminder, error) {
	var reminderModels []models.ReminderModel
	if err := r.db.WithContext(ctx).
		Where("prospect_id = ?", prospectID).
		Order("due_at ASC").
		Find(&reminderModels).Error; err != nil {
		return nil, err
	}
	return toDomainReminders(reminderModels), nil
}

// FindAll returns every reminder within the owner scope ordered by due
// time
func (r *GormReminderRepository) FindAll(ctx context.Context, ownerID *uuid.UUID) ([]crm.Reminder, error) {
	var reminderModels []models.ReminderModel
	query := r.scoped(ctx, ownerID).Order("reminders.due_at ASC")
	if err := query.Find(&reminderModels).Error; err != nil {
		return nil, err
	}
	return toDomainReminders(reminderModels), nil
}

// FindPending returns incomplete reminders due before the given time,
// soonest first
func (r *GormReminderRepository) FindPending(ctx context.Context, ownerID *uuid.UUID, until time.Time) ([]crm.Reminder, error) {
	var reminderModels []models.ReminderModel
	query := r.scoped(ctx, ownerID).
		Where("reminders.completed = ? AND reminders.due_at <= ?", false, until).
		Order("reminders.due_at ASC")
	if err := query.Find(&reminderModels).Error; err != nil {
		return nil, err
	}
	return toDomainReminders(reminderModels), nil
}

// Save creates or updates a reminder
func (r *GormReminderRepository) Save(ctx context.Context, reminder *crm.Reminder) error {
	model := models.ReminderModelFromDomain(reminder)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a reminder
func (r *GormReminderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReminderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormReminderRepository) scoped(ctx context.Context, ownerID *uuid.UUID) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.ReminderModel{}).
		Joins("JOIN prospects ON prospects.id = reminders.prospect_id")
	if ownerID != nil {
		query = query.Where("prospects.owner_id = ? OR prospects.owner_id IS NULL", *ownerID)
	}
	return query
}

func toDomainReminders(reminderModels []models.ReminderModel) []crm.Reminder {
	reminders := make([]crm.Reminder, len(reminderModels))
	for i := range reminderModels {
		reminders[i] = *reminderModels[i].ToDomain()
	}
	return reminders
}
