package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/fieldserve/backend/internal/domain/ordering"
	"github.com/fieldserve/backend/internal/domain/shared"
	"github.com/fieldserve/backend/internal/infrastructure/persistence/models"
)

// GormServiceRepository implements ordering.ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByID finds a service by its id
func (r *GormServiceRepository) FindByID(ctx context.Context, id int64) (*ordering.Service, error) {
	var model models.ServiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple services by their ids
func (r *GormServiceRepository) FindByIDs(ctx context.Context, ids []int64) ([]ordering.Service, error) {
	if len(ids) == 0 {
		return []ordering.Service{}, nil
	}

	var serviceModels []models.ServiceModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&serviceModels).Error; err != nil {
		return nil, err
	}

	return toDomainServices(serviceModels), nil
}

// FindActive lists selectable catalog entries
func (r *GormServiceRepository) FindActive(ctx context.Context, filter shared.Filter) ([]ordering.Service, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ServiceModel{}).
		Where("active = ?", true)

	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := "category ASC, name ASC"
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, ServiceSortFields, "category")
		orderBy = sortField + " " + ValidateSortOrder(filter.OrderDir)
	}

	var serviceModels []models.ServiceModel
	if err := query.Order(orderBy).Find(&serviceModels).Error; err != nil {
		return nil, err
	}

	return toDomainServices(serviceModels), nil
}

// Save creates or updates a service, assigning the generated id on create
func (r *GormServiceRepository) Save(ctx context.Context, service *ordering.Service) error {
	model := models.ServiceModelFromDomain(service)
	if service.ID == 0 {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return err
		}
		service.ID = model.ID
		return nil
	}
	return r.db.WithContext(ctx).Save(model).Error
}

func toDomainServices(serviceModels []models.ServiceModel) []ordering.Service {
	services := make([]ordering.Service, len(serviceModels))
	for i, model := range serviceModels {
		services[i] = *model.ToDomain()
	}
	return services
}

var _ ordering.ServiceRepository = (*GormServiceRepository)(nil)
