package customer

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fieldserve/backend/internal/domain/customer"
	"github.com/fieldserve/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCustomerRepository is a mock implementation of CustomerRepository
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

// MockAddressRepository is a mock implementation of AddressRepository
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

// MockActivationEmailRepository is a mock implementation of ActivationEmailRepository
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

// =============================================================================
// Mock Collaborators
// =============================================================================

// MockIdentityProvider is a mock implementation of IdentityProvider
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

// MockCredentialGenerator is a mock implementation of CredentialGenerator
type MockCredentialGenerator struct {
	mock.Mock
}

func (m *MockCredentialGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// MockMailer is a mock implementation of Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendActivationEmail(ctx context.Context, to, recoveryLink string) error {
	args := m.Called(ctx, to, recoveryLink)
	return args.Error(0)
}
