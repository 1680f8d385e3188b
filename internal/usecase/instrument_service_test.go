package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/wekeepgrowing/connect-demo/internal/domain/errors"
	"github.com/wekeepgrowing/connect-demo/internal/domain/provider"
)

func newInstrumentService(t *testing.T) (*InstrumentService, *MockProvider, string) {
	t.Helper()
	accounts := newTestAccounts(t)
	prov := new(MockProvider)
	correlation := NewCorrelationService(accounts, prov, zap.NewNop())
	svc := NewInstrumentService(accounts, correlation, prov, zap.NewNop())

	record, err := accounts.Create(context.Background(), "ins@example.com", "acct_ins", "")
	require.NoError(t, err)
	return svc, prov, record.ID
}

func TestInstrumentService_CreateSetupIntentCreatesCustomer(t *testing.T) {
	svc, prov, accountID := newInstrumentService(t)
	ctx := context.Background()

	prov.On("FindCustomerByAccountID", mock.Anything, "acct_ins").Return("", nil).Once()
	prov.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(req *provider.CreateCustomerRequest) bool {
		return req.StripeAccountID == "acct_ins"
	})).Return("cus_ins", nil).Once()
	prov.On("CreateSetupIntent", mock.Anything, "cus_ins").Return(&provider.SetupIntent{
		ID:           "seti_1",
		ClientSecret: "seti_1_secret",
		CustomerID:   "cus_ins",
	}, nil)

	result, err := svc.CreateSetupIntent(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, "seti_1", result.SetupIntentID)
	assert.Equal(t, "seti_1_secret", result.ClientSecret)
	assert.Equal(t, "cus_ins", result.CustomerID)
	prov.AssertExpectations(t)
}

func TestInstrumentService_CreateSetupIntentUnknownAccount(t *testing.T) {
	svc, _, _ := newInstrumentService(t)

	_, err := svc.CreateSetupIntent(context.Background(), "plat_0000000000000000")
	assert.Equal(t, domainErrors.KindNotFound, domainErrors.KindOf(err))
}

func TestInstrumentService_ListPaymentMethodsNoCustomer(t *testing.T) {
	svc, prov, accountID := newInstrumentService(t)

	prov.On("FindCustomerByAccountID", mock.Anything, "acct_ins").Return("", nil)

	methods, err := svc.ListPaymentMethods(context.Background(), accountID)
	require.NoError(t, err)
	assert.Empty(t, methods)
	prov.AssertNotCalled(t, "ListCardPaymentMethods", mock.Anything, mock.Anything)
}

func TestInstrumentService_ListPaymentMethods(t *testing.T) {
	svc, prov, accountID := newInstrumentService(t)

	prov.On("FindCustomerByAccountID", mock.Anything, "acct_ins").Return("cus_ins", nil)
	prov.On("ListCardPaymentMethods", mock.Anything, "cus_ins").Return([]*provider.PaymentMethod{
		{
			ID:   "pm_1",
			Type: "card",
			Card: &provider.CardDetails{
				Brand:    "visa",
				Last4:    "4242",
				ExpMonth: 12,
				ExpYear:  2030,
			},
			Created: 1700000000,
		},
	}, nil)

	methods, err := svc.ListPaymentMethods(context.Background(), accountID)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "pm_1", methods[0].ID)
	require.NotNil(t, methods[0].Card)
	assert.Equal(t, "4242", methods[0].Card.Last4)
}

func TestInstrumentService_DetachPaymentMethod(t *testing.T) {
	svc, prov, _ := newInstrumentService(t)

	prov.On("DetachPaymentMethod", mock.Anything, "pm_any").Return(nil)

	// Detach does not verify ownership of the instrument.
	err := svc.DetachPaymentMethod(context.Background(), "pm_any")
	require.NoError(t, err)
	prov.AssertExpectations(t)
}

func TestInstrumentService_ExternalAccounts(t *testing.T) {
	svc, prov, accountID := newInstrumentService(t)
	ctx := context.Background()

	bank := &provider.BankAccount{
		ID:       "ba_1",
		BankName: "STRIPE TEST BANK",
		Last4:    "6789",
		Currency: "usd",
		Country:  "US",
		Status:   "new",
	}

	prov.On("AddBankAccount", mock.Anything, "acct_ins", "btok_test").Return(bank, nil)
	prov.On("ListBankAccounts", mock.Anything, "acct_ins").Return([]*provider.BankAccount{bank}, nil)
	prov.On("SetDefaultBankAccount", mock.Anything, "acct_ins", "ba_1").Return(&provider.BankAccount{
		ID:                 "ba_1",
		DefaultForCurrency: true,
	}, nil)
	prov.On("DeleteBankAccount", mock.Anything, "acct_ins", "ba_1").Return(nil)

	added, err := svc.AddExternalAccount(ctx, accountID, "btok_test")
	require.NoError(t, err)
	assert.Equal(t, "ba_1", added.ID)
	assert.Equal(t, "bank_account", added.Object)

	banks, err := svc.ListExternalAccounts(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, banks, 1)

	updated, err := svc.SetDefaultExternalAccount(ctx, accountID, "ba_1")
	require.NoError(t, err)
	assert.True(t, updated.DefaultForCurrency)

	require.NoError(t, svc.DeleteExternalAccount(ctx, accountID, "ba_1"))
}

func TestInstrumentService_ExternalAccountsUnknownAccount(t *testing.T) {
	svc, prov, _ := newInstrumentService(t)
	ctx := context.Background()

	_, err := svc.AddExternalAccount(ctx, "plat_0000000000000000", "btok_test")
	assert.Equal(t, domainErrors.KindNotFound, domainErrors.KindOf(err))

	_, err = svc.ListExternalAccounts(ctx, "plat_0000000000000000")
	assert.Equal(t, domainErrors.KindNotFound, domainErrors.KindOf(err))

	prov.AssertNotCalled(t, "AddBankAccount", mock.Anything, mock.Anything, mock.Anything)
}
