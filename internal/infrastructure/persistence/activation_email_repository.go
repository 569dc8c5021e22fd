package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fieldserve/backend/internal/domain/customer"
	"github.com/fieldserve/backend/internal/infrastructure/persistence/models"
)

// GormActivationEmailRepository implements customer.ActivationEmailRepository using GORM
type GormActivationEmailRepository struct {
	db *gorm.DB
}

// NewGormActivationEmailRepository creates a new GormActivationEmailRepository
func NewGormActivationEmailRepository(db *gorm.DB) *GormActivationEmailRepository {
	return &GormActivationEmailRepository{db: db}
}

// Append records a sent activation email
func (r *GormActivationEmailRepository) Append(ctx context.Context, record *customer.ActivationEmailRecord) error {
	model := models.ActivationEmailModelFromDomain(record)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	record.ID = model.ID
	return nil
}

// CountSince counts activation emails sent to a customer after the cutoff
func (r *GormActivationEmailRepository) CountSince(ctx context.Context, customerID string, cutoff time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ActivationEmailModel{}).
		Where("customer_id = ? AND issued_at >= ?", customerID, cutoff).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ customer.ActivationEmailRepository = (*GormActivationEmailRepository)(nil)
