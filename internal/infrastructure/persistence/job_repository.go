package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fieldserve/backend/internal/domain/ordering"
	"github.com/fieldserve/backend/internal/domain/shared"
	"github.com/fieldserve/backend/internal/infrastructure/persistence/models"
)

// GormJobRepository implements ordering.JobRepository using GORM
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GormJobRepository
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// FindByID finds a job by its id
func (r *GormJobRepository) FindByID(ctx context.Context, id int64) (*ordering.Job, error) {
	var model models.JobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrder lists the jobs fanned out from an order, highest
// priority first
func (r *GormJobRepository) FindByOrder(ctx context.Context, orderID int64) ([]ordering.Job, error) {
	var jobModels []models.JobModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("priority DESC, id ASC").
		Find(&jobModels).Error; err != nil {
		return nil, err
	}

	jobs := make([]ordering.Job, len(jobModels))
	for i, model := range jobModels {
		jobs[i] = *model.ToDomain()
	}
	return jobs, nil
}

// Save creates or updates a job, assigning the generated id on create
func (r *GormJobRepository) Save(ctx context.Context, job *ordering.Job) error {
	model := models.JobModelFromDomain(job)
	if job.ID == 0 {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return err
		}
		job.ID = model.ID
		return nil
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteByOrder removes all jobs for an order
func (r *GormJobRepository) DeleteByOrder(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Delete(&models.JobModel{}, "order_id = ?", orderID).Error
}

var _ ordering.JobRepository = (*GormJobRepository)(nil)
