package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fieldserve/backend/internal/domain/ordering"
	"github.com/fieldserve/backend/internal/domain/shared"
	"github.com/fieldserve/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its id
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*ordering.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer lists a customer's orders, newest first unless the
// filter says otherwise
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]ordering.Order, error) {
	query := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("customer_id = ?", customerID)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := "created_at DESC"
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
		orderBy = sortField + " " + ValidateSortOrder(filter.OrderDir)
	}

	var orderModels []models.OrderModel
	if err := query.Order(orderBy).Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]ordering.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// Save creates or updates an order, assigning the generated id on create
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	model := models.OrderModelFromDomain(order)
	if order.ID == 0 {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return err
		}
		order.ID = model.ID
		return nil
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an order row
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// LinkService writes the join record tying an order to a selected service
func (r *GormOrderRepository) LinkService(ctx context.Context, orderID, serviceID int64) error {
	return r.db.WithContext(ctx).Create(&models.OrderServiceModel{
		OrderID:   orderID,
		ServiceID: serviceID,
	}).Error
}

// UnlinkServices removes an order's join records
func (r *GormOrderRepository) UnlinkServices(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Delete(&models.OrderServiceModel{}, "order_id = ?", orderID).Error
}

var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
