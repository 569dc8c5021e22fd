package ordering

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fieldserve/backend/internal/domain/shared"
)

// Category represents a service's functional grouping. Together with
// the ordering customer's classification it drives job priority.
type Category string

const (
	CategoryADAS   Category = "adas"
	CategoryAirbag Category = "airbag"
	CategoryImmo   Category = "immo"
	CategoryProg   Category = "prog"
	CategoryDiag   Category = "diag"
)

// Service is a catalog entry customers can select on an order. Each
// selected service produces exactly one job.
type Service struct {
	shared.Timestamps
	ID              int64
	Name            string
	Category        Category
	BasePrice       decimal.Decimal
	DurationMinutes int
	Active          bool
}

// NewService creates a catalog entry
func NewService(name string, category Category, basePrice decimal.Decimal, durationMinutes int) (*Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	if durationMinutes <= 0 {
		return nil, shared.NewDomainError("INVALID_DURATION", "Duration must be positive")
	}

	return &Service{
		Timestamps:      shared.NewTimestamps(),
		Name:            name,
		Category:        category,
		BasePrice:       basePrice,
		DurationMinutes: durationMinutes,
		Active:          true,
	}, nil
}

// Deactivate removes the service from the selectable catalog without
// deleting rows referenced by historical jobs
func (s *Service) Deactivate() {
	s.Active = false
	s.UpdatedAt = time.Now()
}

func validateCategory(c Category) error {
	switch c {
	case CategoryADAS, CategoryAirbag, CategoryImmo, CategoryProg, CategoryDiag:
		return nil
	default:
		return shared.NewDomainError("INVALID_CATEGORY", "Category must be one of 'adas', 'airbag', 'immo', 'prog', 'diag'")
	}
}

// ParseCategory parses a category from its string form
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if err := validateCategory(c); err != nil {
		return "", err
	}
	return c, nil
}
