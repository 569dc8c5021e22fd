package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/fieldserve/backend/internal/domain/access"
	"github.com/fieldserve/backend/internal/domain/customer"
	"github.com/fieldserve/backend/internal/domain/ordering"
	"github.com/fieldserve/backend/internal/domain/shared"
)

// authRouter builds a test engine whose requests all carry the given
// identity and role, simulating the JWT middleware
func authRouter(identityID string, role access.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if identityID != "" {
			setAuthContext(c, identityID, role)
		}
		c.Next()
	})
	return router
}

// =============================================================================
// Customer domain mocks
// =============================================================================

// MockCustomerRepository is a mock implementation of customer.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDs(ctx context.Context, ids []string) ([]customer.Customer, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhoneFragment(ctx context.Context, digits string) ([]customer.Customer, error) {
	args := m.Called(ctx, digits)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByNameTokens(ctx context.Context, tokens []string) ([]customer.Customer, error) {
	args := m.Called(ctx, tokens)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]customer.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockAddressRepository is a mock implementation of customer.AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id int64) (*customer.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Address), args.Error(1)
}

func (m *MockAddressRepository) Save(ctx context.Context, a *customer.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockActivationEmailRepository is a mock implementation of customer.ActivationEmailRepository
type MockActivationEmailRepository struct {
	mock.Mock
}

func (m *MockActivationEmailRepository) Append(ctx context.Context, record *customer.ActivationEmailRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockActivationEmailRepository) CountSince(ctx context.Context, customerID string, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, customerID, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockIdentityProvider is a mock implementation of customer.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CreateIdentity(ctx context.Context, email, credential, displayName string) (*customer.Identity, error) {
	args := m.Called(ctx, email, credential, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Identity), args.Error(1)
}

func (m *MockIdentityProvider) DeleteIdentity(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIdentityProvider) FindIdentityByEmail(ctx context.Context, email string) (*customer.Identity, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Identity), args.Error(1)
}

func (m *MockIdentityProvider) FindIdentitiesByEmailSubstring(ctx context.Context, fragment string) ([]customer.Identity, error) {
	args := m.Called(ctx, fragment)
	return args.Get(0).([]customer.Identity), args.Error(1)
}

func (m *MockIdentityProvider) VerifyToken(ctx context.Context, token string) (*customer.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Identity), args.Error(1)
}

func (m *MockIdentityProvider) IssueRecoveryLink(ctx context.Context, email, redirectTarget string) (string, error) {
	args := m.Called(ctx, email, redirectTarget)
	return args.String(0), args.Error(1)
}

// MockCredentialGenerator is a mock implementation of customer.CredentialGenerator
type MockCredentialGenerator struct {
	mock.Mock
}

func (m *MockCredentialGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// MockMailer is a mock implementation of the activation mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendActivationEmail(ctx context.Context, to, recoveryLink string) error {
	args := m.Called(ctx, to, recoveryLink)
	return args.Error(0)
}

// =============================================================================
// Ordering domain mocks
// =============================================================================

// MockServiceRepository is a mock implementation of ordering.ServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) FindByID(ctx context.Context, id int64) (*ordering.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Service), args.Error(1)
}

func (m *MockServiceRepository) FindByIDs(ctx context.Context, ids []int64) ([]ordering.Service, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]ordering.Service), args.Error(1)
}

func (m *MockServiceRepository) FindActive(ctx context.Context, filter shared.Filter) ([]ordering.Service, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ordering.Service), args.Error(1)
}

func (m *MockServiceRepository) Save(ctx context.Context, service *ordering.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

// MockVehicleRepository is a mock implementation of ordering.VehicleRepository
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id int64) (*ordering.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByVIN(ctx context.Context, vin string) (*ordering.Vehicle, error) {
	args := m.Called(ctx, vin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Upsert(ctx context.Context, vehicle *ordering.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of ordering.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id int64) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) LinkService(ctx context.Context, orderID, serviceID int64) error {
	args := m.Called(ctx, orderID, serviceID)
	return args.Error(0)
}

func (m *MockOrderRepository) UnlinkServices(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// MockJobRepository is a mock implementation of ordering.JobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) FindByID(ctx context.Context, id int64) (*ordering.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Job), args.Error(1)
}

func (m *MockJobRepository) FindByOrder(ctx context.Context, orderID int64) ([]ordering.Job, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]ordering.Job), args.Error(1)
}

func (m *MockJobRepository) Save(ctx context.Context, job *ordering.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) DeleteByOrder(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// =============================================================================
// Access domain mocks
// =============================================================================

// MockTokenIssuer is a mock implementation of the access token issuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(identityID string, isAdmin, isTechnician bool) (string, time.Time, error) {
	args := m.Called(identityID, isAdmin, isTechnician)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenIssuer) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockSecurityEventRepository is a mock implementation of access.SecurityEventRepository
type MockSecurityEventRepository struct {
	mock.Mock
}

func (m *MockSecurityEventRepository) Append(ctx context.Context, event *access.SecurityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockSecurityEventRepository) FindRecent(ctx context.Context, limit int) ([]access.SecurityEvent, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]access.SecurityEvent), args.Error(1)
}
