package ordering

import (
	"strconv"
	"strings"
	"time"

	"github.com/fieldserve/backend/internal/domain/shared"
)

// Vehicle is a customer vehicle referenced by orders. A vehicle with a
// VIN is unique by VIN and upserted; without a VIN a new row is
// created for every submission.
type Vehicle struct {
	shared.Timestamps
	ID    int64
	VIN   *string
	Year  int
	Make  string
	Model string
}

// NewVehicle creates a vehicle from a raw descriptor. Make and model
// are upper-cased and trimmed; the year must be a 4-digit number
// between 1900 and next year.
func NewVehicle(vin, yearRaw, makeName, model string, now time.Time) (*Vehicle, error) {
	year, err := ValidateVehicleYear(yearRaw, now)
	if err != nil {
		return nil, err
	}

	makeName = strings.ToUpper(strings.TrimSpace(makeName))
	model = strings.ToUpper(strings.TrimSpace(model))
	if makeName == "" {
		return nil, shared.NewDomainError("INVALID_VEHICLE", "Vehicle make cannot be empty")
	}
	if model == "" {
		return nil, shared.NewDomainError("INVALID_VEHICLE", "Vehicle model cannot be empty")
	}

	v := &Vehicle{
		Timestamps: shared.NewTimestamps(),
		Year:       year,
		Make:       makeName,
		Model:      model,
	}
	if trimmed := strings.ToUpper(strings.TrimSpace(vin)); trimmed != "" {
		v.VIN = &trimmed
	}
	return v, nil
}

// HasVIN reports whether the vehicle carries a VIN
func (v *Vehicle) HasVIN() bool {
	return v.VIN != nil && *v.VIN != ""
}

// ValidateVehicleYear parses a raw year string and bounds it to
// [1900, current year + 1]
func ValidateVehicleYear(raw string, now time.Time) (int, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) != 4 {
		return 0, shared.NewDomainError("INVALID_VEHICLE_YEAR", "Vehicle year must be a 4-digit number")
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, shared.NewDomainError("INVALID_VEHICLE_YEAR", "Vehicle year must be a 4-digit number")
	}
	maxYear := now.Year() + 1
	if year < 1900 || year > maxYear {
		return 0, shared.NewDomainError("INVALID_VEHICLE_YEAR", "Vehicle year must be between 1900 and "+strconv.Itoa(maxYear))
	}
	return year, nil
}
