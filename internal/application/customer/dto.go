package customer

import (
	"time"

	"github.com/fieldserve/backend/internal/domain/customer"
)

// =============================================================================
// Provisioning DTOs
// =============================================================================

// ProvisionCustomerRequest represents a request to provision a new customer
type ProvisionCustomerRequest struct {
	Name           string   `json:"name" binding:"required,min=1,max=200"`
	Email          string   `json:"email" binding:"required,email,max=200"`
	Phone          string   `json:"phone" binding:"required,min=10,max=50"`
	Classification string   `json:"classification" binding:"required,oneof=residential commercial insurance"`
	Street         string   `json:"street" binding:"required,min=1,max=500"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`

	// StaffInitiated is set from the resolved caller, not the body. A
	// staff-created account gets an activation flow instead of a
	// returned temporary credential.
	StaffInitiated bool    `json:"-"`
	StaffID        *string `json:"-"`
}

// ProvisionCustomerResponse carries the new customer plus either the
// temporary credential (self-service) or the needs-activation flag
// (staff-initiated)
type ProvisionCustomerResponse struct {
	Customer            CustomerResponse `json:"customer"`
	TemporaryCredential string           `json:"temporary_credential,omitempty"`
	NeedsActivation     bool             `json:"needs_activation"`
}

// CustomerResponse is the caller-facing view of a customer
type CustomerResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Classification string    `json:"classification"`
	HomeAddressID  *int64    `json:"home_address_id,omitempty"`
	Activated      bool      `json:"activated"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewCustomerResponse converts a domain customer to its response form
func NewCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.DisplayPhone(),
		Classification: string(c.Classification),
		HomeAddressID:  c.HomeAddressID,
		Activated:      c.Activated,
		CreatedAt:      c.CreatedAt,
	}
}

// =============================================================================
// Search DTOs
// =============================================================================

// SearchResponse is the result of a customer search, keyed by the
// detected search mode
type SearchResponse struct {
	Mode    string         `json:"mode"`
	Results []SearchResult `json:"results"`
}

// SearchResult is one matched customer, with a fuzzy score for name
// searches
type SearchResult struct {
	Customer CustomerResponse `json:"customer"`
	Score    *int             `json:"score,omitempty"`
}

// =============================================================================
// Activation DTOs
// =============================================================================

// ActivationRequest represents a request to (re)issue an activation
// message
type ActivationRequest struct {
	Email string `json:"email" binding:"required,email,max=200"`

	// Captured from the request, not the body
	RequestIP string `json:"-"`
	UserAgent string `json:"-"`
}

// ActivationResponse is deliberately generic: issuing a message,
// hitting an unknown email, and hitting an already-activated account
// all produce the same body to prevent account enumeration
type ActivationResponse struct {
	Message string `json:"message"`
}

// GenericActivationMessage is returned for every non-rate-limited
// activation request outcome
const GenericActivationMessage = "If an account exists for that email, an activation message has been sent."
