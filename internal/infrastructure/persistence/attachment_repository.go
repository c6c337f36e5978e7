package persistence

import (
	"context"
	"errors"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttachmentRepository implements crm.AttachmentRepository using GORM
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewGormAttachmentRepository creates a new GormAttachmentRepository
func NewGormAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// FindByID finds an attachment by its ID
func (r *GormAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Attachment, error) {
	var model models.AttachmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProspect returns a prospect's attachments, newest first
func (r *GormAttachmentRepository) FindByProspect(ctx context.Context, prospectID uuid.UUID) ([]crm.Attachment, error) {
	var attachmentModels []models.AttachmentModel
	if err := r.db.WithContext(ctx).
		Where("prospect_id = ?", prospectID).
		Order("uploaded_at DESC").
		Find(&attachmentModels).Error; err != nil {
		return nil, err
	}

	attachments := make([]crm.Attachment, len(attachmentModels))
	for i := range attachmentModels {
		attachments[i] = *attachmentModels[i].ToDomain()
	}
	return attachments, nil
}

// Save creates or updates an attachment record
func (r *GormAttachmentRepository) Save(ctx context.Context, attachment *crm.Attachment) error {
	model := models.AttachmentModelFromDomain(attachment)
	return translateSaveError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete deletes an attachment record. The caller removes the blob
// before calling this.
func (r *GormAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AttachmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
