package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wekeepgrowing/connect-demo/internal/domain/provider"
)

// MockProvider is a mock implementation of provider.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateAccount(ctx context.Context, req *provider.CreateAccountRequest) (*provider.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Account), args.Error(1)
}

func (m *MockProvider) GetAccount(ctx context.Context, stripeAccountID string) (*provider.Account, error) {
	args := m.Called(ctx, stripeAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Account), args.Error(1)
}

func (m *MockProvider) DeleteAccount(ctx context.Context, stripeAccountID string) error {
	args := m.Called(ctx, stripeAccountID)
	return args.Error(0)
}

func (m *MockProvider) UpgradeToRecipient(ctx context.Context, stripeAccountID string) (*provider.Account, error) {
	args := m.Called(ctx, stripeAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Account), args.Error(1)
}

func (m *MockProvider) CreateOnboardingLink(ctx context.Context, req *provider.OnboardingLinkRequest) (*provider.OnboardingLink, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.OnboardingLink), args.Error(1)
}

func (m *MockProvider) CreateCustomer(ctx context.Context, req *provider.CreateCustomerRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *MockProvider) FindCustomerByAccountID(ctx context.Context, stripeAccountID string) (string, error) {
	args := m.Called(ctx, stripeAccountID)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) CreatePayment(ctx context.Context, req *provider.PaymentRequest) (*provider.Payment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Payment), args.Error(1)
}

func (m *MockProvider) CreateTransfer(ctx context.Context, req *provider.TransferRequest) (*provider.Transfer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Transfer), args.Error(1)
}

func (m *MockProvider) CreateSetupIntent(ctx context.Context, customerID string) (*provider.SetupIntent, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.SetupIntent), args.Error(1)
}

func (m *MockProvider) GetPaymentMethod(ctx context.Context, paymentMethodID string) (*provider.PaymentMethod, error) {
	args := m.Called(ctx, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.PaymentMethod), args.Error(1)
}

func (m *MockProvider) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error {
	args := m.Called(ctx, paymentMethodID, customerID)
	return args.Error(0)
}

func (m *MockProvider) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	args := m.Called(ctx, paymentMethodID)
	return args.Error(0)
}

func (m *MockProvider) ListCardPaymentMethods(ctx context.Context, customerID string) ([]*provider.PaymentMethod, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*provider.PaymentMethod), args.Error(1)
}

func (m *MockProvider) AddBankAccount(ctx context.Context, stripeAccountID, token string) (*provider.BankAccount, error) {
	args := m.Called(ctx, stripeAccountID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.BankAccount), args.Error(1)
}

func (m *MockProvider) ListBankAccounts(ctx context.Context, stripeAccountID string) ([]*provider.BankAccount, error) {
	args := m.Called(ctx, stripeAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*provider.BankAccount), args.Error(1)
}

func (m *MockProvider) DeleteBankAccount(ctx context.Context, stripeAccountID, bankAccountID string) error {
	args := m.Called(ctx, stripeAccountID, bankAccountID)
	return args.Error(0)
}

func (m *MockProvider) SetDefaultBankAccount(ctx context.Context, stripeAccountID, bankAccountID string) (*provider.BankAccount, error) {
	args := m.Called(ctx, stripeAccountID, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.BankAccount), args.Error(1)
}
