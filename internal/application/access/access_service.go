package access

import (
	"context"
	"time"

	"github.com/fieldserve/backend/internal/domain/access"
	"github.com/fieldserve/backend/internal/domain/customer"
	"github.com/fieldserve/backend/internal/domain/shared"
)

// TokenIssuer mints and revokes internal access tokens. The JWT
// implementation lives in infrastructure/auth.
type TokenIssuer interface {
	Issue(identityID string, isAdmin, isTechnician bool) (token string, expiresAt time.Time, err error)
	Revoke(ctx context.Context, token string) error
}

// AccessService resolves caller roles and exchanges provider session
// tokens for internal ones. Role flags come from the profile row, not
// the provider, so staff grants take effect without re-registration.
type AccessService struct {
	customerRepo customer.CustomerRepository
	identity     customer.IdentityProvider
	tokens       TokenIssuer
	audit        access.SecurityEventRepository
}

// NewAccessService creates a new AccessService
func NewAccessService(
	customerRepo customer.CustomerRepository,
	identity customer.IdentityProvider,
	tokens TokenIssuer,
	audit access.SecurityEventRepository,
) *AccessService {
	return &AccessService{
		customerRepo: customerRepo,
		identity:     identity,
		tokens:       tokens,
		audit:        audit,
	}
}

// ExchangeToken verifies a provider session token and issues an
// internal access token carrying the caller's role flags
func (s *AccessService) ExchangeToken(ctx context.Context, req ExchangeTokenRequest) (*TokenResponse, error) {
	identity, err := s.identity.VerifyToken(ctx, req.ProviderToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	c, err := s.customerRepo.FindByID(ctx, identity.ID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.Issue(c.ID, c.IsAdmin, c.IsTechnician)
	if err != nil {
		return nil, err
	}

	role := access.ResolveRole(true, c.IsAdmin, c.IsTechnician)
	s.recordEvent(ctx, access.NewSecurityEvent(c.ID, access.ActionTokenExchanged, "auth/token", true, "role="+role.String()))

	return &TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Role:        role.String(),
	}, nil
}

// Logout revokes an internal access token
func (s *AccessService) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// GetProfile returns the caller's own profile with their resolved role
func (s *AccessService) GetProfile(ctx context.Context, identityID string) (*ProfileResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	role := access.ResolveRole(true, c.IsAdmin, c.IsTechnician)
	resp := NewProfileResponse(c, role)
	return &resp, nil
}

// ResolveRole loads the caller's profile and computes their role. An
// unknown id resolves to the plain customer role so a fresh identity
// without a profile row cannot gain staff access.
func (s *AccessService) ResolveRole(ctx context.Context, identityID string) access.Role {
	if identityID == "" {
		return access.RoleAnonymous
	}
	c, err := s.customerRepo.FindByID(ctx, identityID)
	if err != nil {
		return access.RoleCustomer
	}
	return access.ResolveRole(true, c.IsAdmin, c.IsTechnician)
}

// Authorize checks a requirement against the caller's role. Denials
// are recorded as security events; audit failures never block the
// decision.
func (s *AccessService) Authorize(ctx context.Context, req access.PermissionRequirement, role access.Role, actor, resource string) access.Decision {
	decision := access.Check(req, role)
	if !decision.Allowed {
		s.recordEvent(ctx, access.NewSecurityEvent(actor, access.ActionPermissionDenied, resource, false, decision.Reason))
	}
	return decision
}

// RecordSecurityEvent writes an audit record, swallowing failures
func (s *AccessService) RecordSecurityEvent(ctx context.Context, event *access.SecurityEvent) {
	s.recordEvent(ctx, event)
}

func (s *AccessService) recordEvent(ctx context.Context, event *access.SecurityEvent) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Append(ctx, event)
}
