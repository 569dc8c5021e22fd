package ordering

import (
	"context"

	"github.com/fieldserve/backend/internal/domain/ordering"
	"github.com/fieldserve/backend/internal/domain/shared"
)

// GetOrder returns one order with its jobs
func (s *IntakeService) GetOrder(ctx context.Context, id int64) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobRepo.FindByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	resp := NewOrderResponse(order)
	resp.Jobs = make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, NewJobResponse(&jobs[i]))
	}
	return &resp, nil
}

// ListCustomerOrders returns a customer's orders
func (s *IntakeService) ListCustomerOrders(ctx context.Context, customerID string, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out, nil
}

// UpdateJobStatus applies a technician or scheduler status change
func (s *IntakeService) UpdateJobStatus(ctx context.Context, jobID int64, req UpdateJobStatusRequest) (*JobResponse, error) {
	status, err := ordering.ParseJobStatus(req.Status)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := job.ChangeStatus(status); err != nil {
		return nil, err
	}
	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	resp := NewJobResponse(job)
	return &resp, nil
}

// ListServices returns the selectable catalog
func (s *IntakeService) ListServices(ctx context.Context, filter shared.Filter) ([]ServiceResponse, error) {
	services, err := s.serviceRepo.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, NewServiceResponse(&services[i]))
	}
	return out, nil
}
