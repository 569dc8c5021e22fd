package access

import (
	"time"

	"github.com/fieldserve/backend/internal/domain/access"
	"github.com/fieldserve/backend/internal/domain/customer"
)

// ExchangeTokenRequest represents a request to trade a provider-issued
// session token for an internal access token
type ExchangeTokenRequest struct {
	ProviderToken string `json:"provider_token" binding:"required"`
}

// TokenResponse carries the issued internal access token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        string    `json:"role"`
}

// ProfileResponse is the caller's own resolved profile and role
type ProfileResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Classification string `json:"classification"`
	Role           string `json:"role"`
	Activated      bool   `json:"activated"`
}

// NewProfileResponse builds a profile view from a customer and role
func NewProfileResponse(c *customer.Customer, role access.Role) ProfileResponse {
	return ProfileResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.DisplayPhone(),
		Classification: string(c.Classification),
		Role:           role.String(),
		Activated:      c.Activated,
	}
}
