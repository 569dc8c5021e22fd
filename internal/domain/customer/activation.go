package customer

import (
	"time"

	"github.com/fieldserve/backend/internal/domain/shared"
)

// Activation rate-limit parameters: a customer may be issued at most
// MaxActivationEmailsPerWindow messages within any trailing window.
const (
	ActivationWindow             = time.Hour
	MaxActivationEmailsPerWindow = 3
	ActivationRetryAfterMinutes  = 60
)

// ActivationEmailRecord is an append-only log entry written each time
// an activation message is issued. It exists only to feed the rolling
// rate-limit count.
type ActivationEmailRecord struct {
	ID         int64
	CustomerID string
	IssuedAt   time.Time
	RequestIP  string
	UserAgent  string
}

// NewActivationEmailRecord creates a log entry for an issued message
func NewActivationEmailRecord(customerID, requestIP, userAgent string, now time.Time) (*ActivationEmailRecord, error) {
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_IDENTITY_ID", "Identity id cannot be empty")
	}
	return &ActivationEmailRecord{
		CustomerID: customerID,
		IssuedAt:   now,
		RequestIP:  requestIP,
		UserAgent:  userAgent,
	}, nil
}

// MayIssueActivation applies the rolling-window rule to a count of
// records issued since now minus the window
func MayIssueActivation(recentCount int64) bool {
	return recentCount < MaxActivationEmailsPerWindow
}

// ActivationWindowStart returns the cutoff timestamp for the rolling
// count at a given instant
func ActivationWindowStart(now time.Time) time.Time {
	return now.Add(-ActivationWindow)
}
