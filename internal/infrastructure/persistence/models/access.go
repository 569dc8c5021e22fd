package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/fieldserve/backend/internal/domain/access"
)

// SecurityEventModel is the append-only audit log row.
type SecurityEventModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Actor      string    `gorm:"type:varchar(128);not null;index"`
	Action     string    `gorm:"type:varchar(50);not null;index"`
	Resource   string    `gorm:"type:varchar(200);not null"`
	Success    bool      `gorm:"not null"`
	Details    string    `gorm:"type:text"`
	OccurredAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SecurityEventModel) TableName() string {
	return "security_events"
}

// ToDomain converts the persistence model to a domain SecurityEvent.
func (m *SecurityEventModel) ToDomain() *access.SecurityEvent {
	return &access.SecurityEvent{
		ID:         m.ID,
		Actor:      m.Actor,
		Action:     m.Action,
		Resource:   m.Resource,
		Success:    m.Success,
		Details:    m.Details,
		OccurredAt: m.OccurredAt,
	}
}

// SecurityEventModelFromDomain creates a new persistence model from a domain SecurityEvent.
func SecurityEventModelFromDomain(e *access.SecurityEvent) *SecurityEventModel {
	return &SecurityEventModel{
		ID:         e.ID,
		Actor:      e.Actor,
		Action:     e.Action,
		Resource:   e.Resource,
		Success:    e.Success,
		Details:    e.Details,
		OccurredAt: e.OccurredAt,
	}
}
