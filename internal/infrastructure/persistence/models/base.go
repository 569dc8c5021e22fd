package models

import (
	"time"

	"github.com/fieldserve/backend/internal/domain/shared"
)

// TimestampedModel provides the common persistence fields shared by
// all tables. It maps to the domain's shared.Timestamps.
type TimestampedModel struct {
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts the model timestamps to domain timestamps
func (m *TimestampedModel) ToDomain() shared.Timestamps {
	return shared.Timestamps{
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainTimestamps populates the model from domain timestamps
func (m *TimestampedModel) FromDomainTimestamps(t shared.Timestamps) {
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
}

// VersionedModel extends TimestampedModel with a version column for
// optimistic locking on aggregate roots.
type VersionedModel struct {
	TimestampedModel
	Version int `gorm:"not null;default:1"`
}

// ToDomainAggregateRoot converts the model fields to a domain aggregate root
func (m *VersionedModel) ToDomainAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		Timestamps: m.TimestampedModel.ToDomain(),
		Version:    m.Version,
	}
}

// FromDomainAggregateRoot populates the model from a domain aggregate root
func (m *VersionedModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainTimestamps(a.Timestamps)
	m.Version = a.Version
}
