package customer

import (
	"github.com/fieldserve/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerProvisioned         = "CustomerProvisioned"
	EventTypeCustomerActivationRequested = "CustomerActivationRequested"
	EventTypeCustomerActivated           = "CustomerActivated"
)

// CustomerProvisionedEvent is published when a customer profile is created
type CustomerProvisionedEvent struct {
	shared.BaseDomainEvent
	CustomerID     string         `json:"customer_id"`
	Name           string         `json:"name"`
	Classification Classification `json:"classification"`
}

// NewCustomerProvisionedEvent creates a new CustomerProvisionedEvent
func NewCustomerProvisionedEvent(c *Customer) *CustomerProvisionedEvent {
	return &CustomerProvisionedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerProvisioned, AggregateTypeCustomer, c.ID),
		CustomerID:      c.ID,
		Name:            c.Name,
		Classification:  c.Classification,
	}
}

// CustomerActivationRequestedEvent is published when an activation
// message is issued for a customer
type CustomerActivationRequestedEvent struct {
	shared.BaseDomainEvent
	CustomerID string `json:"customer_id"`
}

// NewCustomerActivationRequestedEvent creates a new CustomerActivationRequestedEvent
func NewCustomerActivationRequestedEvent(customerID string) *CustomerActivationRequestedEvent {
	return &CustomerActivationRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerActivationRequested, AggregateTypeCustomer, customerID),
		CustomerID:      customerID,
	}
}

// CustomerActivatedEvent is published when an account is activated
type CustomerActivatedEvent struct {
	shared.BaseDomainEvent
	CustomerID string `json:"customer_id"`
}

// NewCustomerActivatedEvent creates a new CustomerActivatedEvent
func NewCustomerActivatedEvent(customerID string) *CustomerActivatedEvent {
	return &CustomerActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerActivated, AggregateTypeCustomer, customerID),
		CustomerID:      customerID,
	}
}
