package customer

import (
	"context"
	"errors"
	"time"

	"github.com/fieldserve/backend/internal/domain/customer"
	"github.com/fieldserve/backend/internal/domain/shared"
)

// Mailer delivers activation messages. The outbound transport lives in
// infrastructure; the service only needs a send call.
type Mailer interface {
	SendActivationEmail(ctx context.Context, to, recoveryLink string) error
}

// ActivationService issues credential-recovery messages, bounded to 3
// per customer per trailing hour. Every non-rate-limited outcome —
// message issued, unknown email, already-activated account — returns
// the same generic response so callers cannot tell which emails have
// accounts.
type ActivationService struct {
	customerRepo   customer.CustomerRepository
	activationRepo customer.ActivationEmailRepository
	identity       customer.IdentityProvider
	mailer         Mailer
	redirectTarget string
	now            func() time.Time
}

// NewActivationService creates a new ActivationService
func NewActivationService(
	customerRepo customer.CustomerRepository,
	activationRepo customer.ActivationEmailRepository,
	identity customer.IdentityProvider,
	mailer Mailer,
	redirectTarget string,
) *ActivationService {
	return &ActivationService{
		customerRepo:   customerRepo,
		activationRepo: activationRepo,
		identity:       identity,
		mailer:         mailer,
		redirectTarget: redirectTarget,
		now:            time.Now,
	}
}

// RequestActivation handles an activation request. Only a rate-limit
// breach is reported distinctly, as shared.ErrRateLimited; the caller
// maps it to a 429 with retry_after_minutes.
func (s *ActivationService) RequestActivation(ctx context.Context, req ActivationRequest) (*ActivationResponse, error) {
	generic := &ActivationResponse{Message: GenericActivationMessage}

	identity, err := s.identity.FindIdentityByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return generic, nil
		}
		return nil, shared.ErrDependencyFailed
	}

	c, err := s.customerRepo.FindByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return generic, nil
		}
		return nil, err
	}
	if c.Activated {
		return generic, nil
	}

	now := s.now()
	count, err := s.activationRepo.CountSince(ctx, c.ID, customer.ActivationWindowStart(now))
	if err != nil {
		return nil, err
	}
	if !customer.MayIssueActivation(count) {
		return nil, shared.ErrRateLimited
	}

	link, err := s.identity.IssueRecoveryLink(ctx, req.Email, s.redirectTarget)
	if err != nil {
		return nil, shared.ErrDependencyFailed
	}
	if err := s.mailer.SendActivationEmail(ctx, req.Email, link); err != nil {
		return nil, shared.ErrDependencyFailed
	}

	record, err := customer.NewActivationEmailRecord(c.ID, req.RequestIP, req.UserAgent, now)
	if err != nil {
		return nil, err
	}
	if err := s.activationRepo.Append(ctx, record); err != nil {
		return nil, err
	}

	return generic, nil
}

// RetryAfterMinutes is the fixed hint returned with rate-limit denials
func (s *ActivationService) RetryAfterMinutes() int {
	return customer.ActivationRetryAfterMinutes
}

// WithClock overrides the time source, used by tests
func (s *ActivationService) WithClock(now func() time.Time) *ActivationService {
	s.now = now
	return s
}
