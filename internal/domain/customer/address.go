package customer

import (
	"strings"

	"github.com/fieldserve/backend/internal/domain/shared"
)

// Address is a physical location referenced by customer profiles and
// orders. Addresses are not deduplicated: every submission that names a
// location creates a new row, even when the text matches an existing
// one.
type Address struct {
	shared.Timestamps
	ID        int64
	Street    string
	Latitude  *float64
	Longitude *float64
}

// NewAddress creates a new address from free-text street input
func NewAddress(street string, lat, lng *float64) (*Address, error) {
	street = strings.TrimSpace(street)
	if street == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Street address cannot be empty")
	}
	if len(street) > 500 {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Street address cannot exceed 500 characters")
	}
	if (lat == nil) != (lng == nil) {
		return nil, shared.NewDomainError("INVALID_COORDINATES", "Latitude and longitude must be supplied together")
	}
	if lat != nil {
		if *lat < -90 || *lat > 90 {
			return nil, shared.NewDomainError("INVALID_COORDINATES", "Latitude must be between -90 and 90")
		}
		if *lng < -180 || *lng > 180 {
			return nil, shared.NewDomainError("INVALID_COORDINATES", "Longitude must be between -180 and 180")
		}
	}

	return &Address{
		Timestamps: shared.NewTimestamps(),
		Street:     street,
		Latitude:   lat,
		Longitude:  lng,
	}, nil
}

// HasCoordinates reports whether the address carries a geocoded point
func (a *Address) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}
