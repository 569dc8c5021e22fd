package access

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Security event actions recorded for audit
const (
	ActionPermissionDenied    = "permission_denied"
	ActionRateLimitBreached   = "rate_limit_breached"
	ActionOnBehalfOfAttempted = "on_behalf_of_attempted"
	ActionCustomerProvisioned = "customer_provisioned"
	ActionTokenExchanged      = "token_exchanged"
)

// SecurityEvent is an audit record for security-sensitive outcomes:
// permission denials, rate-limit breaches, and staff-on-behalf-of
// attempts. Write failures in the audit path must never block the
// primary response.
type SecurityEvent struct {
	ID         uuid.UUID
	Actor      string
	Action     string
	Resource   string
	Success    bool
	Details    string
	OccurredAt time.Time
}

// NewSecurityEvent creates an audit record
func NewSecurityEvent(actor, action, resource string, success bool, details string) *SecurityEvent {
	if actor == "" {
		actor = "anonymous"
	}
	return &SecurityEvent{
		ID:         uuid.New(),
		Actor:      actor,
		Action:     action,
		Resource:   resource,
		Success:    success,
		Details:    details,
		OccurredAt: time.Now(),
	}
}

// SecurityEventRepository persists the append-only audit log
type SecurityEventRepository interface {
	// Append writes an audit record
	Append(ctx context.Context, event *SecurityEvent) error

	// FindRecent lists the newest records up to the limit
	FindRecent(ctx context.Context, limit int) ([]SecurityEvent, error)
}
