package ordering

import (
	"strconv"
	"time"

	"github.com/fieldserve/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeOrder = "Order"
	AggregateTypeJob   = "Job"
)

// Event type constants
const (
	EventTypeOrderSubmitted   = "OrderSubmitted"
	EventTypeJobQueued        = "JobQueued"
	EventTypeJobStatusChanged = "JobStatusChanged"
)

// OrderSubmittedEvent is published when an order clears intake
type OrderSubmittedEvent struct {
	shared.BaseDomainEvent
	OrderID           int64     `json:"order_id"`
	CustomerID        string    `json:"customer_id"`
	EarliestAvailable time.Time `json:"earliest_available"`
	CreatedByStaff    bool      `json:"created_by_staff"`
}

// NewOrderSubmittedEvent creates a new OrderSubmittedEvent
func NewOrderSubmittedEvent(o *Order) *OrderSubmittedEvent {
	return &OrderSubmittedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeOrderSubmitted, AggregateTypeOrder, o.AggregateKey()),
		OrderID:           o.ID,
		CustomerID:        o.CustomerID,
		EarliestAvailable: o.EarliestAvailable,
		CreatedByStaff:    o.CreatedByStaff,
	}
}

// JobQueuedEvent is published when a job is fanned out from an order
type JobQueuedEvent struct {
	shared.BaseDomainEvent
	JobID     int64 `json:"job_id"`
	OrderID   int64 `json:"order_id"`
	ServiceID int64 `json:"service_id"`
	Priority  int   `json:"priority"`
}

// NewJobQueuedEvent creates a new JobQueuedEvent
func NewJobQueuedEvent(j *Job) *JobQueuedEvent {
	return &JobQueuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobQueued, AggregateTypeJob, strconv.FormatInt(j.ID, 10)),
		JobID:           j.ID,
		OrderID:         j.OrderID,
		ServiceID:       j.ServiceID,
		Priority:        j.Priority,
	}
}

// JobStatusChangedEvent is published when a technician or the
// scheduler moves a job through its lifecycle
type JobStatusChangedEvent struct {
	shared.BaseDomainEvent
	JobID     int64     `json:"job_id"`
	OldStatus JobStatus `json:"old_status"`
	NewStatus JobStatus `json:"new_status"`
}

// NewJobStatusChangedEvent creates a new JobStatusChangedEvent
func NewJobStatusChangedEvent(j *Job, oldStatus JobStatus) *JobStatusChangedEvent {
	return &JobStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobStatusChanged, AggregateTypeJob, strconv.FormatInt(j.ID, 10)),
		JobID:           j.ID,
		OldStatus:       oldStatus,
		NewStatus:       j.Status,
	}
}
