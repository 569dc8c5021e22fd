package ordering

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fieldserve/backend/internal/domain/customer"
	"github.com/fieldserve/backend/internal/domain/ordering"
	"github.com/fieldserve/backend/internal/domain/shared"
)

// IntakeService turns one submitted order into its address, vehicle,
// and order rows plus one queued job per selected service. The writes
// run as a saga so a failure at any step rolls the earlier steps back;
// job fan-out is concurrent and a fan-out failure compensates the
// whole submission.
type IntakeService struct {
	customerRepo customer.CustomerRepository
	addressRepo  customer.AddressRepository
	vehicleRepo  ordering.VehicleRepository
	serviceRepo  ordering.ServiceRepository
	orderRepo    ordering.OrderRepository
	jobRepo      ordering.JobRepository
	now          func() time.Time
}

// NewIntakeService creates a new IntakeService
func NewIntakeService(
	customerRepo customer.CustomerRepository,
	addressRepo customer.AddressRepository,
	vehicleRepo ordering.VehicleRepository,
	serviceRepo ordering.ServiceRepository,
	orderRepo ordering.OrderRepository,
	jobRepo ordering.JobRepository,
) *IntakeService {
	return &IntakeService{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		vehicleRepo:  vehicleRepo,
		serviceRepo:  serviceRepo,
		orderRepo:    orderRepo,
		jobRepo:      jobRepo,
		now:          time.Now,
	}
}

// Submit processes one order submission end to end
func (s *IntakeService) Submit(ctx context.Context, req SubmitOrderRequest) (*SubmitOrderResponse, error) {
	// Resolve the owning customer. Ordering for someone else demands
	// the on-behalf-of capability.
	ownerID := req.RequesterID
	onBehalf := req.TargetCustomerID != "" && req.TargetCustomerID != req.RequesterID
	if onBehalf {
		if !req.RequesterCanActOnBehalf {
			return nil, shared.ErrForbidden
		}
		ownerID = req.TargetCustomerID
	}

	owner, err := s.customerRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Everything below validates before the first write.
	vehicle, err := ordering.NewVehicle(req.VIN, req.VehicleYear, req.Make, req.Model, s.now())
	if err != nil {
		return nil, err
	}

	services, err := s.resolveServices(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	var (
		address        *customer.Address
		order          *ordering.Order
		vehicleExisted bool

		jobsMu sync.Mutex
		jobs   []ordering.Job
	)

	saga := shared.NewSaga().
		AddStep(shared.SagaStep{
			Name: "create-address",
			Action: func(ctx context.Context) error {
				a, err := customer.NewAddress(req.Street, req.Latitude, req.Longitude)
				if err != nil {
					return err
				}
				if err := s.addressRepo.Save(ctx, a); err != nil {
					return err
				}
				address = a
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.addressRepo.Delete(ctx, address.ID)
			},
		}).
		AddStep(shared.SagaStep{
			Name: "upsert-vehicle",
			Action: func(ctx context.Context) error {
				existed, err := s.vehicleExists(ctx, vehicle)
				if err != nil {
					return err
				}
				vehicleExisted = existed
				return s.vehicleRepo.Upsert(ctx, vehicle)
			},
			Compensate: func(ctx context.Context) error {
				// only rows inserted in this attempt are removed
				if vehicleExisted {
					return nil
				}
				return s.vehicleRepo.Delete(ctx, vehicle.ID)
			},
		}).
		AddStep(shared.SagaStep{
			Name: "create-order",
			Action: func(ctx context.Context) error {
				o, err := ordering.NewOrder(owner.ID, vehicle.ID, address.ID, req.EarliestAvailable, req.Notes)
				if err != nil {
					return err
				}
				if onBehalf {
					if err := o.AttributeToStaff(req.RequesterID); err != nil {
						return err
					}
				}
				if err := s.orderRepo.Save(ctx, o); err != nil {
					return err
				}
				order = o
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.orderRepo.Delete(ctx, order.ID)
			},
		}).
		AddStep(shared.SagaStep{
			Name: "fan-out-jobs",
			Action: func(ctx context.Context) error {
				return s.fanOutJobs(ctx, order, address.ID, owner.Classification, services, &jobsMu, &jobs)
			},
			Compensate: func(ctx context.Context) error {
				if err := s.jobRepo.DeleteByOrder(ctx, order.ID); err != nil {
					return err
				}
				return s.orderRepo.UnlinkServices(ctx, order.ID)
			},
		})

	if err := saga.Execute(ctx); err != nil {
		return nil, err
	}

	order.RecordSubmitted()

	resp := &SubmitOrderResponse{OrderID: order.ID, Jobs: make([]JobResponse, 0, len(jobs))}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, NewJobResponse(&jobs[i]))
	}
	return resp, nil
}

// resolveServices loads the selected catalog entries and rejects
// unknown or inactive ids before any write happens
func (s *IntakeService) resolveServices(ctx context.Context, ids []int64) ([]ordering.Service, error) {
	if len(ids) == 0 {
		return nil, shared.NewDomainError("INVALID_SERVICES", "At least one service must be selected")
	}
	services, err := s.serviceRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(services) != len(ids) {
		return nil, shared.NewDomainError("INVALID_SERVICES", "One or more selected services do not exist")
	}
	for i := range services {
		if !services[i].Active {
			return nil, shared.NewDomainError("INVALID_SERVICES", "One or more selected services are no longer offered")
		}
	}
	return services, nil
}

// vehicleExists reports whether a VIN-carrying vehicle already has a
// row, so compensation knows not to delete it
func (s *IntakeService) vehicleExists(ctx context.Context, v *ordering.Vehicle) (bool, error) {
	if !v.HasVIN() {
		return false, nil
	}
	_, err := s.vehicleRepo.FindByVIN(ctx, *v.VIN)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// fanOutJobs links each selected service to the order and creates its
// job, all concurrently. The first failure is reported but in-flight
// siblings are not cancelled; the caller compensates afterwards.
func (s *IntakeService) fanOutJobs(
	ctx context.Context,
	order *ordering.Order,
	addressID int64,
	classification customer.Classification,
	services []ordering.Service,
	mu *sync.Mutex,
	out *[]ordering.Job,
) error {
	var (
		wg       sync.WaitGroup
		firstErr error
	)

	for i := range services {
		svc := services[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			priority := ordering.ComputePriority(classification, svc.Category)
			job, err := ordering.NewJob(order.ID, svc.ID, addressID, priority, svc.DurationMinutes, order.EarliestAvailable, order.Notes)
			if err == nil {
				if linkErr := s.orderRepo.LinkService(ctx, order.ID, svc.ID); linkErr != nil {
					err = linkErr
				} else {
					err = s.jobRepo.Save(ctx, job)
				}
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			*out = append(*out, *job)
		}()
	}

	wg.Wait()
	return firstErr
}
