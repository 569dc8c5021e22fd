package ordering

import (
	"strconv"
	"time"

	"github.com/fieldserve/backend/internal/domain/shared"
)

// Order is the aggregate root for order intake. It references exactly
// one customer, one vehicle, and one service address; the jobs fanned
// out from it are scheduled independently.
type Order struct {
	shared.BaseAggregateRoot
	ID                int64
	CustomerID        string
	VehicleID         int64
	AddressID         int64
	EarliestAvailable time.Time
	Notes             string

	// Staff attribution, set when an admin-technician submits the
	// order on the customer's behalf
	CreatedByStaff bool
	StaffID        *string
}

// NewOrder creates an order for a customer
func NewOrder(customerID string, vehicleID, addressID int64, earliestAvailable time.Time, notes string) (*Order, error) {
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "Order must reference a customer")
	}
	if vehicleID <= 0 {
		return nil, shared.NewDomainError("INVALID_VEHICLE_ID", "Order must reference a vehicle")
	}
	if addressID <= 0 {
		return nil, shared.NewDomainError("INVALID_ADDRESS_ID", "Order must reference an address")
	}
	if earliestAvailable.IsZero() {
		return nil, shared.NewDomainError("INVALID_AVAILABILITY", "Order must carry an earliest-available time")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		VehicleID:         vehicleID,
		AddressID:         addressID,
		EarliestAvailable: earliestAvailable,
		Notes:             notes,
	}
	return o, nil
}

// AttributeToStaff records which staff identity submitted the order on
// the owning customer's behalf
func (o *Order) AttributeToStaff(staffID string) error {
	if staffID == "" {
		return shared.NewDomainError("INVALID_STAFF_ID", "Staff id cannot be empty")
	}
	o.CreatedByStaff = true
	o.StaffID = &staffID
	o.UpdatedAt = time.Now()
	return nil
}

// RecordSubmitted records the submission event once the order row
// exists and has its id. Events are a record on the aggregate, not a
// dispatch: readers pull them with GetDomainEvents.
func (o *Order) RecordSubmitted() {
	o.AddDomainEvent(NewOrderSubmittedEvent(o))
}

// AggregateKey returns the order id in the string form used by events
func (o *Order) AggregateKey() string {
	return strconv.FormatInt(o.ID, 10)
}
