package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/fieldserve/backend/internal/domain/customer"
	"github.com/fieldserve/backend/internal/domain/shared"
	"github.com/fieldserve/backend/internal/infrastructure/persistence/models"
)

// GormCustomerRepository implements customer.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer profile by its identity id
func (r *GormCustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple customer profiles by their identity ids
func (r *GormCustomerRepository) FindByIDs(ctx context.Context, ids []string) ([]customer.Customer, error) {
	if len(ids) == 0 {
		return []customer.Customer{}, nil
	}

	var customerModels []models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&customerModels).Error; err != nil {
		return nil, err
	}

	return toDomainCustomers(customerModels), nil
}

// FindByPhoneFragment finds customers whose stored digits contain the
// query digits or are contained by them. The bidirectional containment
// lets a partial stored number still match a full query.
func (r *GormCustomerRepository) FindByPhoneFragment(ctx context.Context, digits string) ([]customer.Customer, error) {
	if digits == "" {
		return []customer.Customer{}, nil
	}

	var customerModels []models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("phone LIKE ? OR (phone <> '' AND ? LIKE '%' || phone || '%')", "%"+digits+"%", digits).
		Find(&customerModels).Error; err != nil {
		return nil, err
	}

	return toDomainCustomers(customerModels), nil
}

// FindByNameTokens finds customers whose normalized name contains
// every token as a substring
func (r *GormCustomerRepository) FindByNameTokens(ctx context.Context, tokens []string) ([]customer.Customer, error) {
	if len(tokens) == 0 {
		return []customer.Customer{}, nil
	}

	query := r.db.WithContext(ctx).Model(&models.CustomerModel{})
	for _, token := range tokens {
		query = query.Where("name_normalized LIKE ?", "%"+token+"%")
	}

	var customerModels []models.CustomerModel
	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}

	return toDomainCustomers(customerModels), nil
}

// FindAll finds all customer profiles matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]customer.Customer, error) {
	var customerModels []models.CustomerModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)

	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}

	return toDomainCustomers(customerModels), nil
}

// Save creates or updates a customer profile
func (r *GormCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	model := models.CustomerModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a customer profile row
func (r *GormCustomerRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts customer profiles matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies search, pagination and ordering to a query
func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, CustomerSortFields, "name_normalized")
		query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name_normalized ASC")
	}

	return query
}

// applyFilterWithoutPagination applies search criteria without pagination
func (r *GormCustomerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("name_normalized LIKE ? OR phone LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "classification":
			query = query.Where("classification = ?", value)
		case "activated":
			query = query.Where("activated = ?", value)
		case "staff":
			if value == true {
				query = query.Where("is_admin = ? OR is_technician = ?", true, true)
			}
		}
	}

	return query
}

func toDomainCustomers(customerModels []models.CustomerModel) []customer.Customer {
	customers := make([]customer.Customer, len(customerModels))
	for i, model := range customerModels {
		customers[i] = *model.ToDomain()
	}
	return customers
}

var _ customer.CustomerRepository = (*GormCustomerRepository)(nil)
