package customer

import (
	"regexp"
	"time"

	"github.com/fieldserve/backend/internal/domain/shared"
)

// Classification represents a customer's billing and urgency category
type Classification string

const (
	ClassificationResidential Classification = "residential"
	ClassificationCommercial  Classification = "commercial"
	ClassificationInsurance   Classification = "insurance"
)

// Customer is the aggregate root for the customer context. It is keyed
// by the identifier issued by the external identity provider, so the
// profile row can only exist after the identity does.
type Customer struct {
	shared.BaseAggregateRoot
	ID             string
	Name           string
	Phone          string // normalized, digits only
	Classification Classification
	HomeAddressID  *int64
	IsAdmin        bool
	IsTechnician   bool
	Activated      bool
}

// NewCustomer creates a new customer profile keyed by an identity id.
// Phone must already be normalized to 10 digits by the caller.
func NewCustomer(identityID, name, phone string, classification Classification) (*Customer, error) {
	if identityID == "" {
		return nil, shared.NewDomainError("INVALID_IDENTITY_ID", "Identity id cannot be empty")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}
	if err := validateClassification(classification); err != nil {
		return nil, err
	}

	c := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ID:                identityID,
		Name:              name,
		Phone:             phone,
		Classification:    classification,
		Activated:         true,
	}

	c.AddDomainEvent(NewCustomerProvisionedEvent(c))

	return c, nil
}

// SetHomeAddress links the customer to their home address row
func (c *Customer) SetHomeAddress(addressID int64) {
	c.HomeAddressID = &addressID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// MarkPendingActivation flags a staff-created account that still needs
// the customer to set their own credential via the recovery flow
func (c *Customer) MarkPendingActivation() {
	c.Activated = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate marks the account as activated
func (c *Customer) Activate() error {
	if c.Activated {
		return shared.NewDomainError("ALREADY_ACTIVATED", "Account is already activated")
	}
	c.Activated = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// GrantStaffRoles sets the administrative and technician flags. The two
// flags are independent; holding both is what makes a caller an
// admin-technician, there is no separate stored state for that.
func (c *Customer) GrantStaffRoles(isAdmin, isTechnician bool) {
	c.IsAdmin = isAdmin
	c.IsTechnician = isTechnician
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// DisplayPhone returns the phone formatted for display
func (c *Customer) DisplayPhone() string {
	return FormatPhone(c.Phone)
}

// Validation functions

var phoneDigits = regexp.MustCompile(`^\d{10}$`)

// ValidatePhone checks that a phone is normalized to exactly 10 digits
func ValidatePhone(phone string) error {
	if !phoneDigits.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone must be exactly 10 digits")
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validateClassification(c Classification) error {
	switch c {
	case ClassificationResidential, ClassificationCommercial, ClassificationInsurance:
		return nil
	default:
		return shared.NewDomainError("INVALID_CLASSIFICATION", "Classification must be 'residential', 'commercial', or 'insurance'")
	}
}

// ParseClassification parses a classification from its string form
func ParseClassification(s string) (Classification, error) {
	c := Classification(s)
	if err := validateClassification(c); err != nil {
		return "", err
	}
	return c, nil
}
