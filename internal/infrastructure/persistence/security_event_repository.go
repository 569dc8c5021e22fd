package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/fieldserve/backend/internal/domain/access"
	"github.com/fieldserve/backend/internal/infrastructure/persistence/models"
)

// GormSecurityEventRepository implements access.SecurityEventRepository using GORM
type GormSecurityEventRepository struct {
	db *gorm.DB
}

// NewGormSecurityEventRepository creates a new GormSecurityEventRepository
func NewGormSecurityEventRepository(db *gorm.DB) *GormSecurityEventRepository {
	return &GormSecurityEventRepository{db: db}
}

// Append writes an audit record
func (r *GormSecurityEventRepository) Append(ctx context.Context, event *access.SecurityEvent) error {
	model := models.SecurityEventModelFromDomain(event)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindRecent lists the newest audit records up to the limit
func (r *GormSecurityEventRepository) FindRecent(ctx context.Context, limit int) ([]access.SecurityEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	var eventModels []models.SecurityEventModel
	if err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]access.SecurityEvent, len(eventModels))
	for i, model := range eventModels {
		events[i] = *model.ToDomain()
	}
	return events, nil
}

var _ access.SecurityEventRepository = (*GormSecurityEventRepository)(nil)
