package customer

import (
	"context"
	"time"

	"github.com/fieldserve/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its identity id
	FindByID(ctx context.Context, id string) (*Customer, error)

	// FindByIDs finds multiple customers by their identity ids
	FindByIDs(ctx context.Context, ids []string) ([]Customer, error)

	// FindByPhoneFragment finds customers whose normalized phone
	// contains, or is contained by, the given normalized digits
	FindByPhoneFragment(ctx context.Context, digits string) ([]Customer, error)

	// FindByNameTokens finds customers whose normalized name contains
	// every token as a substring
	FindByNameTokens(ctx context.Context, tokens []string) ([]Customer, error)

	// FindAll finds all customers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete removes a customer row, used only by saga compensation
	Delete(ctx context.Context, id string) error

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	// FindByID finds an address by its numeric id
	FindByID(ctx context.Context, id int64) (*Address, error)

	// Save creates or updates an address, assigning the id on insert
	Save(ctx context.Context, address *Address) error

	// Delete removes an address row, used only by saga compensation
	Delete(ctx context.Context, id int64) error
}

// ActivationEmailRepository persists the append-only activation log
type ActivationEmailRepository interface {
	// Append writes a new log entry
	Append(ctx context.Context, record *ActivationEmailRecord) error

	// CountSince counts entries for a customer issued at or after the
	// given cutoff
	CountSince(ctx context.Context, customerID string, cutoff time.Time) (int64, error)
}
