package ordering

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fieldserve/backend/internal/domain/ordering"
)

// =============================================================================
// Order intake DTOs
// =============================================================================

// SubmitOrderRequest represents a request to submit a service order
type SubmitOrderRequest struct {
	// TargetCustomerID names another customer the order is for; only
	// admin-technicians may set it
	TargetCustomerID string `json:"target_customer_id" binding:"omitempty,max=128"`

	VIN         string `json:"vin" binding:"omitempty,max=17"`
	VehicleYear string `json:"vehicle_year" binding:"required,len=4"`
	Make        string `json:"make" binding:"required,min=1,max=100"`
	Model       string `json:"model" binding:"required,min=1,max=100"`

	Street    string   `json:"street" binding:"required,min=1,max=500"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	EarliestAvailable time.Time `json:"earliest_available" binding:"required"`
	Notes             string    `json:"notes" binding:"max=2000"`
	ServiceIDs        []int64   `json:"service_ids" binding:"required,min=1,dive,gt=0"`

	// Resolved caller, set from the request context
	RequesterID             string `json:"-"`
	RequesterCanActOnBehalf bool   `json:"-"`
}

// SubmitOrderResponse carries the created order and its fanned-out jobs
type SubmitOrderResponse struct {
	OrderID int64         `json:"order_id"`
	Jobs    []JobResponse `json:"jobs"`
}

// OrderResponse is the caller-facing view of an order
type OrderResponse struct {
	ID                int64         `json:"id"`
	CustomerID        string        `json:"customer_id"`
	VehicleID         int64         `json:"vehicle_id"`
	AddressID         int64         `json:"address_id"`
	EarliestAvailable time.Time     `json:"earliest_available"`
	Notes             string        `json:"notes,omitempty"`
	CreatedByStaff    bool          `json:"created_by_staff"`
	StaffID           *string       `json:"staff_id,omitempty"`
	Jobs              []JobResponse `json:"jobs,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
}

// NewOrderResponse converts a domain order to its response form
func NewOrderResponse(o *ordering.Order) OrderResponse {
	return OrderResponse{
		ID:                o.ID,
		CustomerID:        o.CustomerID,
		VehicleID:         o.VehicleID,
		AddressID:         o.AddressID,
		EarliestAvailable: o.EarliestAvailable,
		Notes:             o.Notes,
		CreatedByStaff:    o.CreatedByStaff,
		StaffID:           o.StaffID,
		CreatedAt:         o.CreatedAt,
	}
}

// JobResponse is the caller-facing view of a job
type JobResponse struct {
	ID              int64     `json:"id"`
	OrderID         int64     `json:"order_id"`
	ServiceID       int64     `json:"service_id"`
	Priority        int       `json:"priority"`
	Status          string    `json:"status"`
	RequestedTime   time.Time `json:"requested_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes,omitempty"`
}

// NewJobResponse converts a domain job to its response form
func NewJobResponse(j *ordering.Job) JobResponse {
	return JobResponse{
		ID:              j.ID,
		OrderID:         j.OrderID,
		ServiceID:       j.ServiceID,
		Priority:        j.Priority,
		Status:          string(j.Status),
		RequestedTime:   j.RequestedTime,
		DurationMinutes: j.DurationMinutes,
		Notes:           j.Notes,
	}
}

// UpdateJobStatusRequest represents a technician status update
type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=queued en_route in_progress pending_revisit completed cancelled pending_review"`
}

// ServiceResponse is the caller-facing view of a catalog entry
type ServiceResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	BasePrice       decimal.Decimal `json:"base_price"`
	DurationMinutes int             `json:"duration_minutes"`
	Active          bool            `json:"active"`
}

// NewServiceResponse converts a domain service to its response form
func NewServiceResponse(s *ordering.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Category:        string(s.Category),
		BasePrice:       s.BasePrice,
		DurationMinutes: s.DurationMinutes,
		Active:          s.Active,
	}
}
