package shared

import (
	"time"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// Timestamps provides creation and modification times for entities.
// Identifiers are declared by each entity because keys differ across
// contexts: customers are keyed by their identity-provider ID while
// orders, jobs, vehicles and addresses use numeric surrogate keys.
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetCreatedAt returns the creation timestamp
func (t *Timestamps) GetCreatedAt() time.Time {
	return t.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (t *Timestamps) GetUpdatedAt() time.Time {
	return t.UpdatedAt
}

// NewTimestamps creates timestamps set to the current time
func NewTimestamps() Timestamps {
	now := time.Now()
	return Timestamps{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the modification time
func (t *Timestamps) Touch() {
	t.UpdatedAt = time.Now()
}
