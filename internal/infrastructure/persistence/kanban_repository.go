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

// GormKanbanRepository implements project.KanbanRepository using GORM
type GormKanbanRepository struct {
	db *gorm.DB
}

// NewGormKanbanRepository creates a new GormKanbanRepository
func NewGormKanbanRepository(db *gorm.DB) *GormKanbanRepository {
	return &GormKanbanRepository{db: db}
}

// FindColumnByID finds a column by its ID
func (r *GormKanbanRepository) FindColumnByID(ctx context.Context, id uuid.UUID) (*project.KanbanColumn, error) {
	var model models.KanbanColumnModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindColumns returns a project's columns ordered by position, with
// their tasks loaded in position order
func (r *GormKanbanRepository) FindColumns(ctx context.Context, projectID uuid.UUID) ([]project.KanbanColumn, error) {
	var columnModels []models.KanbanColumnModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position ASC").
		Find(&columnModels).Error; err != nil {
		return nil, err
	}
	if len(columnModels) == 0 {
		return []project.KanbanColumn{}, nil
	}

	columnIDs := make([]uuid.UUID, len(columnModels))
	for i := range columnModels {
		columnIDs[i] = columnModels[i].ID
	}

	var taskModels []models.KanbanTaskModel
	if err := r.db.WithContext(ctx).
		Where("column_id IN ?", columnIDs).
		Order("position ASC").
		Find(&taskModels).Error; err != nil {
		return nil, err
	}

	tasksByColumn := make(map[uuid.UUID][]project.KanbanTask)
	for i := range taskModels {
		task := taskModels[i].ToDomain()
		tasksByColumn[task.ColumnID] = append(tasksByColumn[task.ColumnID], *task)
	}

	columns := make([]project.KanbanColumn, len(columnModels))
	for i := range columnModels {
		column := columnModels[i].ToDomain()
		column.Tasks = tasksByColumn[column.ID]
		columns[i] = *column
	}
	return columns, nil
}

// FindTaskByID finds a task by its ID
func (r *GormKanbanRepository) FindTaskByID(ctx context.Context, id uuid.UUID) (*project.KanbanTask, error) {
	var model models.KanbanTaskModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindTasks returns a column's tasks ordered by position
func (r *GormKanbanRepository) FindTasks(ctx context.Context, columnID uuid.UUID) ([]project.KanbanTask, error) {
	var taskModels []models.KanbanTaskModel
	if err := r.db.WithContext(ctx).
		Where("column_id = ?", columnID).
		Order("position ASC").
		Find(&taskModels).Error; err != nil {
		return nil, err
	}

	tasks := make([]project.KanbanTask, len(taskModels))
	for i := range taskModels {
		tasks[i] = *taskModels[i].ToDomain()
	}
	return tasks, nil
}

// MaxTaskPosition returns the highest task position in a column, or -1
// for an empty column
func (r *GormKanbanRepository) MaxTaskPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).
		Model(&models.KanbanTaskModel{}).
		Where("column_id = ?", columnID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

// MaxColumnPosition returns the highest column position in a project,
// or -1 for an empty board
func (r *GormKanbanRepository) MaxColumnPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).
		Model(&models.KanbanColumnModel{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

// ShiftTasks adjusts by delta the position of every task in the column
// with position >= from
func (r *GormKanbanRepository) ShiftTasks(ctx context.Context, columnID uuid.UUID, from, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.KanbanTaskModel{}).
		Where("column_id = ? AND position >= ?", columnID, from).
		Update("position", gorm.Expr("position + ?", delta)).Error
}

// SaveColumn creates or updates a column
func (r *GormKanbanRepository) SaveColumn(ctx context.Context, column *project.KanbanColumn) error {
	model := models.KanbanColumnModelFromDomain(column)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveTask creates or updates a task
func (r *GormKanbanRepository) SaveTask(ctx context.Context, task *project.KanbanTask) error {
	model := models.KanbanTaskModelFromDomain(task)
	return r.db.WithContext(ctx).Save(model).Error
}

// ReorderColumns atomically applies the given column order and
// re-densifies task positions within every column of the project
func (r *GormKanbanRepository) ReorderColumns(ctx context.Context, projectID uuid.UUID, orderedColumnIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, columnID := range orderedColumnIDs {
			result := tx.Model(&models.KanbanColumnModel{}).
				Where("id = ? AND project_id = ?", columnID, projectID).
				Update("position", position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrNotFound
			}
		}

		for _, columnID := range orderedColumnIDs {
			var taskModels []models.KanbanTaskModel
			if err := tx.
				Where("column_id = ?", columnID).
				Order("position ASC").
				Find(&taskModels).Error; err != nil {
				return err
			}
			for i := range taskModels {
				if taskModels[i].Position == i {
					continue
				}
				if err := tx.Model(&models.KanbanTaskModel{}).
					Where("id = ?", taskModels[i].ID).
					Update("position", i).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// DeleteColumn deletes a column and its tasks
func (r *GormKanbanRepository) DeleteColumn(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.KanbanTaskModel{}, "column_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.KanbanColumnModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// DeleteTask deletes a task
func (r *GormKanbanRepository) DeleteTask(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.KanbanTaskModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
