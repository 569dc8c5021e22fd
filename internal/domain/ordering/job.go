package ordering

import (
	"time"

	"github.com/fieldserve/backend/internal/domain/shared"
)

// JobStatus represents where a job sits in its lifecycle
type JobStatus string

const (
	JobStatusQueued         JobStatus = "queued"
	JobStatusEnRoute        JobStatus = "en_route"
	JobStatusInProgress     JobStatus = "in_progress"
	JobStatusPendingRevisit JobStatus = "pending_revisit"
	JobStatusCompleted      JobStatus = "completed"
	JobStatusCancelled      JobStatus = "cancelled"
	JobStatusPendingReview  JobStatus = "pending_review"
)

// Job is one independently schedulable unit of work fanned out from an
// order, one per selected service.
type Job struct {
	shared.BaseAggregateRoot
	ID              int64
	OrderID         int64
	ServiceID       int64
	AddressID       int64
	Priority        int
	Status          JobStatus
	RequestedTime   time.Time
	DurationMinutes int
	Notes           string
}

// NewJob creates a queued job for one service on an order. Priority
// comes from the classification/category table and the requested time
// from the order's earliest-available time.
func NewJob(orderID, serviceID, addressID int64, priority, durationMinutes int, requestedTime time.Time, notes string) (*Job, error) {
	if orderID <= 0 {
		return nil, shared.NewDomainError("INVALID_ORDER_ID", "Job must reference an order")
	}
	if serviceID <= 0 {
		return nil, shared.NewDomainError("INVALID_SERVICE_ID", "Job must reference a service")
	}
	if addressID <= 0 {
		return nil, shared.NewDomainError("INVALID_ADDRESS_ID", "Job must reference an address")
	}
	if priority < MinPriority || priority > MaxPriority {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Job priority must be between 1 and 8")
	}
	if durationMinutes <= 0 {
		return nil, shared.NewDomainError("INVALID_DURATION", "Job duration must be positive")
	}

	return &Job{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		ServiceID:         serviceID,
		AddressID:         addressID,
		Priority:          priority,
		Status:            JobStatusQueued,
		RequestedTime:     requestedTime,
		DurationMinutes:   durationMinutes,
		Notes:             notes,
	}, nil
}

// jobTransitions lists the allowed moves through the lifecycle. The
// scheduler and technicians both drive status changes through
// ChangeStatus.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusQueued:         {JobStatusEnRoute, JobStatusCancelled},
	JobStatusEnRoute:        {JobStatusInProgress, JobStatusQueued, JobStatusCancelled},
	JobStatusInProgress:     {JobStatusCompleted, JobStatusPendingRevisit, JobStatusPendingReview, JobStatusCancelled},
	JobStatusPendingRevisit: {JobStatusQueued, JobStatusCancelled},
	JobStatusPendingReview:  {JobStatusCompleted, JobStatusCancelled},
}

// ChangeStatus moves the job to a new status if the transition is
// allowed from the current one
func (j *Job) ChangeStatus(newStatus JobStatus) error {
	if err := validateJobStatus(newStatus); err != nil {
		return err
	}
	for _, allowed := range jobTransitions[j.Status] {
		if allowed == newStatus {
			oldStatus := j.Status
			j.Status = newStatus
			j.UpdatedAt = time.Now()
			j.IncrementVersion()
			j.AddDomainEvent(NewJobStatusChangedEvent(j, oldStatus))
			return nil
		}
	}
	return shared.NewDomainError("INVALID_STATUS_TRANSITION",
		"Cannot move job from '"+string(j.Status)+"' to '"+string(newStatus)+"'")
}

// IsTerminal reports whether the job has reached a final status
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusCancelled
}

func validateJobStatus(s JobStatus) error {
	switch s {
	case JobStatusQueued, JobStatusEnRoute, JobStatusInProgress,
		JobStatusPendingRevisit, JobStatusCompleted, JobStatusCancelled, JobStatusPendingReview:
		return nil
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown job status '"+string(s)+"'")
	}
}

// ParseJobStatus parses a job status from its string form
func ParseJobStatus(s string) (JobStatus, error) {
	status := JobStatus(s)
	if err := validateJobStatus(status); err != nil {
		return "", err
	}
	return status, nil
}
