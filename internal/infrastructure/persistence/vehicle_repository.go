package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fieldserve/backend/internal/domain/ordering"
	"github.com/fieldserve/backend/internal/domain/shared"
	"github.com/fieldserve/backend/internal/infrastructure/persistence/models"
)

// GormVehicleRepository implements ordering.VehicleRepository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID finds a vehicle by its id
func (r *GormVehicleRepository) FindByID(ctx context.Context, id int64) (*ordering.Vehicle, error) {
	var model models.VehicleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByVIN finds a vehicle by its VIN
func (r *GormVehicleRepository) FindByVIN(ctx context.Context, vin string) (*ordering.Vehicle, error) {
	var model models.VehicleModel
	if err := r.db.WithContext(ctx).First(&model, "vin = ?", vin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Upsert inserts the vehicle, or refreshes the existing row when its VIN
// is already stored. Vehicles without a VIN always insert a fresh row.
func (r *GormVehicleRepository) Upsert(ctx context.Context, vehicle *ordering.Vehicle) error {
	if vehicle.VIN != nil && *vehicle.VIN != "" {
		var existing models.VehicleModel
		err := r.db.WithContext(ctx).First(&existing, "vin = ?", *vehicle.VIN).Error
		if err == nil {
			model := models.VehicleModelFromDomain(vehicle)
			model.ID = existing.ID
			model.CreatedAt = existing.CreatedAt
			if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
				return err
			}
			vehicle.ID = model.ID
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	model := models.VehicleModelFromDomain(vehicle)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	vehicle.ID = model.ID
	return nil
}

// Delete removes a vehicle row
func (r *GormVehicleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.VehicleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ ordering.VehicleRepository = (*GormVehicleRepository)(nil)
