package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWorkerRepository implements crm.WorkerRepository using GORM
type GormWorkerRepository struct {
	db *gorm.DB
}

// NewGormWorkerRepository creates a new GormWorkerRepository
func NewGormWorkerRepository(db *gorm.DB) *GormWorkerRepository {
	return &GormWorkerRepository{db: db}
}

// FindByID finds a worker by its ID
func (r *GormWorkerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Worker, error) {
	var model models.WorkerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds workers matching the filter
func (r *GormWorkerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Worker, error) {
	var workerModels []models.WorkerModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.WorkerModel{}), filter)

	if err := query.Find(&workerModels).Error; err != nil {
		return nil, err
	}

	workers := make([]crm.Worker, len(workerModels))
	for i := range workerModels {
		workers[i] = *workerModels[i].ToDomain()
	}
	return workers, nil
}

// Count counts workers matching the filter
func (r *GormWorkerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.WorkerModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a worker
func (r *GormWorkerRepository) Save(ctx context.Context, worker *crm.Worker) error {
	model := models.WorkerModelFromDomain(worker)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a worker along with its prospect links and project
// assignments
func (r *GormWorkerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProspectWorkerModel{}, "worker_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.TeamMemberModel{}, "worker_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.WorkerModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormWorkerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("name ASC")
	}

	return query
}

func (r *GormWorkerRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR role LIKE ? OR email LIKE ?",
			pattern, pattern, pattern)
	}
	return query
}

// GormProspectWorkerRepository implements crm.ProspectWorkerRepository using GORM
type GormProspectWorkerRepository struct {
	db *gorm.DB
}

// NewGormProspectWorkerRepository creates a new GormProspectWorkerRepository
func NewGormProspectWorkerRepository(db *gorm.DB) *GormProspectWorkerRepository {
	return &GormProspectWorkerRepository{db: db}
}

// FindByID finds a link by its ID
func (r *GormProspectWorkerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.ProspectWorker, error) {
	var model models.ProspectWorkerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProspect returns the links of a prospect
func (r *GormProspectWorkerRepository) FindByProspect(ctx context.Context, prospectID uuid.UUID) ([]crm.ProspectWorker, error) {
	var linkModels []models.ProspectWorkerModel
	if err := r.db.WithContext(ctx).
		Where("prospect_id = ?", prospectID).
		Order("created_at ASC").
		Find(&linkModels).Error; err != nil {
		return nil, err
	}
	links := make([]crm.ProspectWorker, len(linkModels))
	for i := range linkModels {
		links[i] = *linkModels[i].ToDomain()
	}
	return links, nil
}

// FindByWorker returns the links of a worker
func (r *GormProspectWorkerRepository) FindByWorker(ctx context.Context, workerID uuid.UUID) ([]crm.ProspectWorker, error) {
	var linkModels []models.ProspectWorkerModel
	if err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at ASC").
		Find(&linkModels).Error; err != nil {
		return nil, err
	}
	links := make([]crm.ProspectWorker, len(linkModels))
	for i := range linkModels {
		links[i] = *linkModels[i].ToDomain()
	}
	return links, nil
}

// FindLink finds the link between a prospect and a worker, if any
func (r *GormProspectWorkerRepository) FindLink(ctx context.Context, prospectID, workerID uuid.UUID) (*crm.ProspectWorker, error) {
	var model models.ProspectWorkerModel
	if err := r.db.WithContext(ctx).
		Where("prospect_id = ? AND worker_id = ?", prospectID, workerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// AverageRatings returns the average link rating per prospect for the
// given prospects. Prospects without links are absent from the result.
func (r *GormProspectWorkerRepository) AverageRatings(ctx context.Context, prospectIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	if len(prospectIDs) == 0 {
		return map[uuid.UUID]float64{}, nil
	}
	type ratingRow struct {
		ProspectID uuid.UUID
		Average    float64
	}
	var rows []ratingRow
	if err := r.db.WithContext(ctx).
		Model(&models.ProspectWorkerModel{}).
		Select("prospect_id, AVG(rating) as average").
		Where("prospect_id IN ?", prospectIDs).
		Group("prospect_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	ratings := make(map[uuid.UUID]float64, len(rows))
	for _, row := range rows {
		ratings[row.ProspectID] = row.Average
	}
	return ratings, nil
}

// TopRatedWorkers returns workers ordered by their average rating
// across links, best first
func (r *GormProspectWorkerRepository) TopRatedWorkers(ctx context.Context, limit int) ([]crm.WorkerRating, error) {
	var rows []crm.WorkerRating
	if err := r.db.WithContext(ctx).
		Model(&models.ProspectWorkerModel{}).
		Select("prospect_workers.worker_id, workers.name as worker_name, AVG(prospect_workers.rating) as average, COUNT(*) as links").
		Joins("JOIN workers ON workers.id = prospect_workers.worker_id").
		Group("prospect_workers.worker_id, workers.name").
		Order("average DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save creates or updates a link
func (r *GormProspectWorkerRepository) Save(ctx context.Context, link *crm.ProspectWorker) error {
	model := models.ProspectWorkerModelFromDomain(link)
	return translateSaveError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete deletes a link
func (r *GormProspectWorkerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProspectWorkerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
