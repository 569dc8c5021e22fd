package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fieldserve/backend/internal/domain/ordering"
)

// ServiceModel is the persistence model for the service catalog.
type ServiceModel struct {
	TimestampedModel
	ID              int64             `gorm:"primaryKey;autoIncrement"`
	Name            string            `gorm:"type:varchar(200);not null"`
	Category        ordering.Category `gorm:"type:varchar(20);not null;index"`
	BasePrice       decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	DurationMinutes int               `gorm:"not null;default:60"`
	Active          bool              `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ServiceModel) TableName() string {
	return "services"
}

// ToDomain converts the persistence model to a domain Service.
func (m *ServiceModel) ToDomain() *ordering.Service {
	return &ordering.Service{
		Timestamps:      m.TimestampedModel.ToDomain(),
		ID:              m.ID,
		Name:            m.Name,
		Category:        m.Category,
		BasePrice:       m.BasePrice,
		DurationMinutes: m.DurationMinutes,
		Active:          m.Active,
	}
}

// FromDomain populates the persistence model from a domain Service.
func (m *ServiceModel) FromDomain(s *ordering.Service) {
	m.FromDomainTimestamps(s.Timestamps)
	m.ID = s.ID
	m.Name = s.Name
	m.Category = s.Category
	m.BasePrice = s.BasePrice
	m.DurationMinutes = s.DurationMinutes
	m.Active = s.Active
}

// ServiceModelFromDomain creates a new persistence model from a domain Service.
func ServiceModelFromDomain(s *ordering.Service) *ServiceModel {
	m := &ServiceModel{}
	m.FromDomain(s)
	return m
}

// VehicleModel is the persistence model for vehicles. The VIN is
// nullable and unique: VIN-less vehicles always insert fresh rows,
// VIN-carrying ones are deduplicated on it.
type VehicleModel struct {
	TimestampedModel
	ID    int64   `gorm:"primaryKey;autoIncrement"`
	VIN   *string `gorm:"type:varchar(17);uniqueIndex"`
	Year  int     `gorm:"not null"`
	Make  string  `gorm:"type:varchar(100);not null"`
	Model string  `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (VehicleModel) TableName() string {
	return "vehicles"
}

// ToDomain converts the persistence model to a domain Vehicle.
func (m *VehicleModel) ToDomain() *ordering.Vehicle {
	return &ordering.Vehicle{
		Timestamps: m.TimestampedModel.ToDomain(),
		ID:         m.ID,
		VIN:        m.VIN,
		Year:       m.Year,
		Make:       m.Make,
		Model:      m.Model,
	}
}

// FromDomain populates the persistence model from a domain Vehicle.
func (m *VehicleModel) FromDomain(v *ordering.Vehicle) {
	m.FromDomainTimestamps(v.Timestamps)
	m.ID = v.ID
	m.VIN = v.VIN
	m.Year = v.Year
	m.Make = v.Make
	m.Model = v.Model
}

// VehicleModelFromDomain creates a new persistence model from a domain Vehicle.
func VehicleModelFromDomain(v *ordering.Vehicle) *VehicleModel {
	m := &VehicleModel{}
	m.FromDomain(v)
	return m
}

// OrderModel is the persistence model for submitted orders.
type OrderModel struct {
	VersionedModel
	ID                int64     `gorm:"primaryKey;autoIncrement"`
	CustomerID        string    `gorm:"type:varchar(128);not null;index"`
	VehicleID         int64     `gorm:"not null"`
	AddressID         int64     `gorm:"not null"`
	EarliestAvailable time.Time `gorm:"not null"`
	Notes             string    `gorm:"type:text"`
	CreatedByStaff    bool      `gorm:"not null;default:false"`
	StaffID           *string   `gorm:"type:varchar(128)"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *ordering.Order {
	return &ordering.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ID:                m.ID,
		CustomerID:        m.CustomerID,
		VehicleID:         m.VehicleID,
		AddressID:         m.AddressID,
		EarliestAvailable: m.EarliestAvailable,
		Notes:             m.Notes,
		CreatedByStaff:    m.CreatedByStaff,
		StaffID:           m.StaffID,
	}
}

// FromDomain populates the persistence model from a domain Order.
func (m *OrderModel) FromDomain(o *ordering.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.ID = o.ID
	m.CustomerID = o.CustomerID
	m.VehicleID = o.VehicleID
	m.AddressID = o.AddressID
	m.EarliestAvailable = o.EarliestAvailable
	m.Notes = o.Notes
	m.CreatedByStaff = o.CreatedByStaff
	m.StaffID = o.StaffID
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *ordering.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderServiceModel is the join row tying an order to a selected service.
type OrderServiceModel struct {
	OrderID   int64 `gorm:"primaryKey"`
	ServiceID int64 `gorm:"primaryKey"`
}

// TableName returns the table name for GORM
func (OrderServiceModel) TableName() string {
	return "order_services"
}

// JobModel is the persistence model for dispatch jobs.
type JobModel struct {
	VersionedModel
	ID              int64              `gorm:"primaryKey;autoIncrement"`
	OrderID         int64              `gorm:"not null;index"`
	ServiceID       int64              `gorm:"not null"`
	AddressID       int64              `gorm:"not null"`
	Priority        int                `gorm:"not null;index"`
	Status          ordering.JobStatus `gorm:"type:varchar(20);not null;index"`
	RequestedTime   time.Time          `gorm:"not null"`
	DurationMinutes int                `gorm:"not null;default:60"`
	Notes           string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (JobModel) TableName() string {
	return "jobs"
}

// ToDomain converts the persistence model to a domain Job.
func (m *JobModel) ToDomain() *ordering.Job {
	return &ordering.Job{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ID:                m.ID,
		OrderID:           m.OrderID,
		ServiceID:         m.ServiceID,
		AddressID:         m.AddressID,
		Priority:          m.Priority,
		Status:            m.Status,
		RequestedTime:     m.RequestedTime,
		DurationMinutes:   m.DurationMinutes,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Job.
func (m *JobModel) FromDomain(j *ordering.Job) {
	m.FromDomainAggregateRoot(j.BaseAggregateRoot)
	m.ID = j.ID
	m.OrderID = j.OrderID
	m.ServiceID = j.ServiceID
	m.AddressID = j.AddressID
	m.Priority = j.Priority
	m.Status = j.Status
	m.RequestedTime = j.RequestedTime
	m.DurationMinutes = j.DurationMinutes
	m.Notes = j.Notes
}

// JobModelFromDomain creates a new persistence model from a domain Job.
func JobModelFromDomain(j *ordering.Job) *JobModel {
	m := &JobModel{}
	m.FromDomain(j)
	return m
}
