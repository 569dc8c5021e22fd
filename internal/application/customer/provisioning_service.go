package customer

import (
	"context"
	"errors"

	"github.com/fieldserve/backend/internal/domain/customer"
	"github.com/fieldserve/backend/internal/domain/shared"
)

// ProvisioningService creates customer accounts across the identity
// provider and the relational store. The two systems share no
// transaction, so creation runs as a saga: address, then identity,
// then profile, with reverse-order compensation when a later step
// fails.
type ProvisioningService struct {
	customerRepo customer.CustomerRepository
	addressRepo  customer.AddressRepository
	identity     customer.IdentityProvider
	credentials  customer.CredentialGenerator
}

// NewProvisioningService creates a new ProvisioningService
func NewProvisioningService(
	customerRepo customer.CustomerRepository,
	addressRepo customer.AddressRepository,
	identity customer.IdentityProvider,
	credentials customer.CredentialGenerator,
) *ProvisioningService {
	return &ProvisioningService{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		identity:     identity,
		credentials:  credentials,
	}
}

// Provision creates a customer account. The email must not already be
// registered with the identity provider; duplicates are rejected
// before any write happens.
func (s *ProvisioningService) Provision(ctx context.Context, req ProvisionCustomerRequest) (*ProvisionCustomerResponse, error) {
	phone := customer.NormalizePhone(req.Phone)
	if err := customer.ValidatePhone(phone); err != nil {
		return nil, err
	}

	classification, err := customer.ParseClassification(req.Classification)
	if err != nil {
		return nil, err
	}

	// Duplicate check happens before the saga runs so a taken email
	// causes zero writes.
	existing, err := s.identity.FindIdentityByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrDependencyFailed
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A customer with this email already exists")
	}

	credential, err := s.credentials.Generate()
	if err != nil {
		return nil, err
	}

	var (
		address    *customer.Address
		identity   *customer.Identity
		newProfile *customer.Customer
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
			Name: "create-identity",
			Action: func(ctx context.Context) error {
				id, err := s.identity.CreateIdentity(ctx, req.Email, credential, req.Name)
				if err != nil {
					return err
				}
				identity = id
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.identity.DeleteIdentity(ctx, identity.ID)
			},
		}).
		AddStep(shared.SagaStep{
			Name: "create-profile",
			Action: func(ctx context.Context) error {
				c, err := customer.NewCustomer(identity.ID, req.Name, phone, classification)
				if err != nil {
					return err
				}
				c.SetHomeAddress(address.ID)
				if req.StaffInitiated {
					c.MarkPendingActivation()
				}
				if err := s.customerRepo.Save(ctx, c); err != nil {
					return err
				}
				newProfile = c
				return nil
			},
		})

	if err := saga.Execute(ctx); err != nil {
		return nil, err
	}

	resp := &ProvisionCustomerResponse{
		Customer:        NewCustomerResponse(newProfile),
		NeedsActivation: req.StaffInitiated,
	}
	if !req.StaffInitiated {
		resp.TemporaryCredential = credential
	}
	return resp, nil
}

// GetByID returns one customer profile
func (s *ProvisioningService) GetByID(ctx context.Context, id string) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := NewCustomerResponse(c)
	return &resp, nil
}

// List returns customers matching the filter
func (s *ProvisioningService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, NewCustomerResponse(&customers[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &page, nil
}
