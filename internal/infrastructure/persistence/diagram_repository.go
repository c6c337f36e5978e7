package persistence

import (
	"context"
	"errors"

	"github.com/crm/backend/internal/domain/project"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDiagramRepository implements project.DiagramRepository using GORM
type GormDiagramRepository struct {
	db *gorm.DB
}

// NewGormDiagramRepository creates a new GormDiagramRepository
func NewGormDiagramRepository(db *gorm.DB) *GormDiagramRepository {
	return &GormDiagramRepository{db: db}
}

// FindByID finds a diagram by its ID
func (r *GormDiagramRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Diagram, error) {
	var model models.DiagramModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProject returns a project's diagrams, newest first
func (r *GormDiagramRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]project.Diagram, error) {
	var diagramModels []models.DiagramModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&diagramModels).Error; err != nil {
		return nil, err
	}

	diagrams := make([]project.Diagram, len(diagramModels))
	for i := range diagramModels {
		diagrams[i] = *diagramModels[i].ToDomain()
	}
	return diagrams, nil
}

// Save creates or updates a diagram
func (r *GormDiagramRepository) Save(ctx context.Context, diagram *project.Diagram) error {
	model := models.DiagramModelFromDomain(diagram)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a diagram
func (r *GormDiagramRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DiagramModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
