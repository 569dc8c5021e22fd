package models

import (
	"time"

	"github.com/fieldserve/backend/internal/domain/customer"
)

// CustomerModel is the persistence model for the Customer profile. The
// primary key is the identity-provider user id, so profile rows never
// mint their own identifiers.
type CustomerModel struct {
	VersionedModel
	ID             string                  `gorm:"type:varchar(128);primaryKey"`
	Name           string                  `gorm:"type:varchar(200);not null"`
	NameNormalized string                  `gorm:"type:varchar(200);not null;index"`
	Phone          string                  `gorm:"type:varchar(20);not null;index"`
	Classification customer.Classification `gorm:"type:varchar(20);not null"`
	HomeAddressID  *int64                  `gorm:"index"`
	IsAdmin        bool                    `gorm:"not null;default:false"`
	IsTechnician   bool                    `gorm:"not null;default:false"`
	Activated      bool                    `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer.
func (m *CustomerModel) ToDomain() *customer.Customer {
	return &customer.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ID:                m.ID,
		Name:              m.Name,
		Phone:             m.Phone,
		Classification:    m.Classification,
		HomeAddressID:     m.HomeAddressID,
		IsAdmin:           m.IsAdmin,
		IsTechnician:      m.IsTechnician,
		Activated:         m.Activated,
	}
}

// FromDomain populates the persistence model from a domain Customer.
// The normalized name column is derived here so the search index never
// drifts from the display name.
func (m *CustomerModel) FromDomain(c *customer.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.ID = c.ID
	m.Name = c.Name
	m.NameNormalized = customer.NormalizeName(c.Name)
	m.Phone = c.Phone
	m.Classification = c.Classification
	m.HomeAddressID = c.HomeAddressID
	m.IsAdmin = c.IsAdmin
	m.IsTechnician = c.IsTechnician
	m.Activated = c.Activated
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer.
func CustomerModelFromDomain(c *customer.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// AddressModel is the persistence model for service addresses.
type AddressModel struct {
	TimestampedModel
	ID        int64    `gorm:"primaryKey;autoIncrement"`
	Street    string   `gorm:"type:varchar(500);not null"`
	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address.
func (m *AddressModel) ToDomain() *customer.Address {
	return &customer.Address{
		Timestamps: m.TimestampedModel.ToDomain(),
		ID:         m.ID,
		Street:     m.Street,
		Latitude:   m.Latitude,
		Longitude:  m.Longitude,
	}
}

// FromDomain populates the persistence model from a domain Address.
func (m *AddressModel) FromDomain(a *customer.Address) {
	m.FromDomainTimestamps(a.Timestamps)
	m.ID = a.ID
	m.Street = a.Street
	m.Latitude = a.Latitude
	m.Longitude = a.Longitude
}

// AddressModelFromDomain creates a new persistence model from a domain Address.
func AddressModelFromDomain(a *customer.Address) *AddressModel {
	m := &AddressModel{}
	m.FromDomain(a)
	return m
}

// ActivationEmailModel is the append-only log row behind the
// activation rate limit. Rows are never updated or deleted.
type ActivationEmailModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	CustomerID string    `gorm:"type:varchar(128);not null;index:idx_activation_customer_issued,priority:1"`
	IssuedAt   time.Time `gorm:"not null;index:idx_activation_customer_issued,priority:2"`
	RequestIP  string    `gorm:"type:varchar(64)"`
	UserAgent  string    `gorm:"type:varchar(512)"`
}

// TableName returns the table name for GORM
func (ActivationEmailModel) TableName() string {
	return "activation_emails"
}

// ToDomain converts the persistence model to a domain log record.
func (m *ActivationEmailModel) ToDomain() *customer.ActivationEmailRecord {
	return &customer.ActivationEmailRecord{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		IssuedAt:   m.IssuedAt,
		RequestIP:  m.RequestIP,
		UserAgent:  m.UserAgent,
	}
}

// ActivationEmailModelFromDomain creates a new persistence model from a domain record.
func ActivationEmailModelFromDomain(r *customer.ActivationEmailRecord) *ActivationEmailModel {
	return &ActivationEmailModel{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		IssuedAt:   r.IssuedAt,
		RequestIP:  r.RequestIP,
		UserAgent:  r.UserAgent,
	}
}
