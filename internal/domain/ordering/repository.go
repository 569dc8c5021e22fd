package ordering

import (
	"context"

	"github.com/fieldserve/backend/internal/domain/shared"
)

// ServiceRepository defines the interface for the service catalog
type ServiceRepository interface {
	// FindByID finds a service by its numeric id
	FindByID(ctx context.Context, id int64) (*Service, error)

	// FindByIDs finds multiple services, preserving only those found
	FindByIDs(ctx context.Context, ids []int64) ([]Service, error)

	// FindActive lists selectable catalog entries
	FindActive(ctx context.Context, filter shared.Filter) ([]Service, error)

	// Save creates or updates a service
	Save(ctx context.Context, service *Service) error
}

// VehicleRepository defines the interface for vehicle persistence
type VehicleRepository interface {
	// FindByID finds a vehicle by its numeric id
	FindByID(ctx context.Context, id int64) (*Vehicle, error)

	// FindByVIN finds a vehicle by VIN. Returns shared.ErrNotFound
	// when no vehicle carries it.
	FindByVIN(ctx context.Context, vin string) (*Vehicle, error)

	// Upsert inserts the vehicle, or updates the existing row when a
	// VIN is present and already stored. The vehicle's ID is set to
	// the surviving row either way.
	Upsert(ctx context.Context, vehicle *Vehicle) error

	// Delete removes a vehicle row, used only by saga compensation
	// for rows inserted within the failed submission
	Delete(ctx context.Context, id int64) error
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its numeric id
	FindByID(ctx context.Context, id int64) (*Order, error)

	// FindByCustomer lists a customer's orders
	FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error

	// Delete removes an order row, used only by saga compensation
	Delete(ctx context.Context, id int64) error

	// LinkService writes the join record tying an order to a selected
	// service
	LinkService(ctx context.Context, orderID, serviceID int64) error

	// UnlinkServices removes an order's join records, used only by
	// saga compensation
	UnlinkServices(ctx context.Context, orderID int64) error
}

// JobRepository defines the interface for job persistence
type JobRepository interface {
	// FindByID finds a job by its numeric id
	FindByID(ctx context.Context, id int64) (*Job, error)

	// FindByOrder lists the jobs fanned out from an order
	FindByOrder(ctx context.Context, orderID int64) ([]Job, error)

	// Save creates or updates a job
	Save(ctx context.Context, job *Job) error

	// DeleteByOrder removes all jobs for an order, used only by saga
	// compensation after a partial fan-out
	DeleteByOrder(ctx context.Context, orderID int64) error
}
