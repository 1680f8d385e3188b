package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/wekeepgrowing/connect-demo/internal/domain/errors"
	"github.com/wekeepgrowing/connect-demo/internal/domain/model"
	"github.com/wekeepgrowing/connect-demo/internal/domain/provider"
	"github.com/wekeepgrowing/connect-demo/internal/domain/repository"
)

type paymentFixture struct {
	svc       *PaymentService
	prov      *MockProvider
	accounts  repository.AccountRepository
	sender    *model.PlatformAccount
	recipient *model.PlatformAccount
}

func newPaymentFixture(t *testing.T, feeBps int64, senderCustomerID string) *paymentFixture {
	t.Helper()
	accounts := newTestAccounts(t)
	prov := new(MockProvider)
	correlation := NewCorrelationService(accounts, prov, zap.NewNop())
	svc := NewPaymentService(accounts, correlation, prov, feeBps, "usd", zap.NewNop())
	ctx := context.Background()

	sender, err := accounts.Create(ctx, "sender@example.com", "acct_sender", senderCustomerID)
	require.NoError(t, err)
	recipient, err := accounts.Create(ctx, "recipient@example.com", "acct_recipient", "")
	require.NoError(t, err)

	return &paymentFixture{
		svc:       svc,
		prov:      prov,
		accounts:  accounts,
		sender:    sender,
		recipient: recipient,
	}
}

func TestPaymentService_PayUser(t *testing.T) {
	f := newPaymentFixture(t, 0, "cus_sender")
	ctx := context.Background()

	f.prov.On("GetPaymentMethod", mock.Anything, "pm_1").Return(&provider.PaymentMethod{
		ID:         "pm_1",
		CustomerID: "cus_sender",
	}, nil)
	f.prov.On("CreatePayment", mock.Anything, mock.MatchedBy(func(req *provider.PaymentRequest) bool {
		return req.Amount == 1000 &&
			req.Currency == "usd" &&
			req.CustomerID == "cus_sender" &&
			req.Destination == "acct_recipient" &&
			req.Confirm &&
			req.ApplicationFee == 0
	})).Return(&provider.Payment{
		ID:          "pi_1",
		Amount:      1000,
		Currency:    "usd",
		Status:      "succeeded",
		Destination: "acct_recipient",
		Created:     1700000000,
	}, nil)

	receipt, err := f.svc.PayUser(ctx, f.sender.ID, &PayUserInput{
		Amount:             1000,
		Currency:           "usd",
		RecipientAccountID: f.recipient.ID,
		PaymentMethodID:    "pm_1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), receipt.Amount)
	assert.Equal(t, f.recipient.ID, receipt.Recipient)
	assert.Equal(t, "acct_recipient", receipt.Transfer)
	assert.Equal(t, "succeeded", receipt.Status)

	// Already attached to this customer, so no attach call happens.
	f.prov.AssertNotCalled(t, "AttachPaymentMethod", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_PayUserAttachesUnattachedMethod(t *testing.T) {
	f := newPaymentFixture(t, 0, "cus_sender")
	ctx := context.Background()

	f.prov.On("GetPaymentMethod", mock.Anything, "pm_loose").Return(&provider.PaymentMethod{
		ID: "pm_loose",
	}, nil)
	f.prov.On("AttachPaymentMethod", mock.Anything, "pm_loose", "cus_sender").Return(nil).Once()
	f.prov.On("CreatePayment", mock.Anything, mock.Anything).Return(&provider.Payment{
		ID:          "pi_2",
		Amount:      500,
		Currency:    "usd",
		Status:      "succeeded",
		Destination: "acct_recipient",
	}, nil)

	_, err := f.svc.PayUser(ctx, f.sender.ID, &PayUserInput{
		Amount:             500,
		RecipientAccountID: f.recipient.ID,
		PaymentMethodID:    "pm_loose",
	})
	require.NoError(t, err)
	f.prov.AssertExpectations(t)
}

func TestPaymentService_PayUserWithoutCustomer(t *testing.T) {
	f := newPaymentFixture(t, 0, "")
	ctx := context.Background()

	f.prov.On("FindCustomerByAccountID", mock.Anything, "acct_sender").Return("", nil)

	_, err := f.svc.PayUser(ctx, f.sender.ID, &PayUserInput{
		Amount:             1000,
		RecipientAccountID: f.recipient.ID,
		PaymentMethodID:    "pm_1",
	})
	require.Error(t, err)
	assert.Equal(t, domainErrors.KindValidation, domainErrors.KindOf(err))

	// No charge call is made when the sender is not payment-capable.
	f.prov.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
}

func TestPaymentService_PayUserUnknownParticipants(t *testing.T) {
	f := newPaymentFixture(t, 0, "cus_sender")
	ctx := context.Background()

	_, err := f.svc.PayUser(ctx, "plat_0000000000000000", &PayUserInput{
		Amount:             1000,
		RecipientAccountID: f.recipient.ID,
		PaymentMethodID:    "pm_1",
	})
	assert.Equal(t, domainErrors.KindNotFound, domainErrors.KindOf(err))

	_, err = f.svc.PayUser(ctx, f.sender.ID, &PayUserInput{
		Amount:             1000,
		RecipientAccountID: "plat_ffffffffffffffff",
		PaymentMethodID:    "pm_1",
	})
	assert.Equal(t, domainErrors.KindNotFound, domainErrors.KindOf(err))
}

func TestPaymentService_PayUserAppliesFee(t *testing.T) {
	f := newPaymentFixture(t, 250, "cus_sender") // 2.5%
	ctx := context.Background()

	f.prov.On("GetPaymentMethod", mock.Anything, "pm_1").Return(&provider.PaymentMethod{
		ID:         "pm_1",
		CustomerID: "cus_sender",
	}, nil)
	f.prov.On("CreatePayment", mock.Anything, mock.MatchedBy(func(req *provider.PaymentRequest) bool {
		return req.ApplicationFee == 25 // 2.5% of 1000
	})).Return(&provider.Payment{
		ID:          "pi_fee",
		Amount:      1000,
		Currency:    "usd",
		Status:      "succeeded",
		Destination: "acct_recipient",
	}, nil)

	_, err := f.svc.PayUser(ctx, f.sender.ID, &PayUserInput{
		Amount:             1000,
		RecipientAccountID: f.recipient.ID,
		PaymentMethodID:    "pm_1",
	})
	require.NoError(t, err)
	f.prov.AssertExpectations(t)
}

func TestPaymentService_PayUserCardDeclined(t *testing.T) {
	f := newPaymentFixture(t, 0, "cus_sender")
	ctx := context.Background()

	f.prov.On("GetPaymentMethod", mock.Anything, "pm_bad").Return(&provider.PaymentMethod{
		ID:         "pm_bad",
		CustomerID: "cus_sender",
	}, nil)
	f.prov.On("CreatePayment", mock.Anything, mock.Anything).
		Return(nil, domainErrors.CardDeclined("Your card was declined", nil))

	_, err := f.svc.PayUser(ctx, f.sender.ID, &PayUserInput{
		Amount:             1000,
		RecipientAccountID: f.recipient.ID,
		PaymentMethodID:    "pm_bad",
	})
	require.Error(t, err)
	assert.Equal(t, domainErrors.KindCardDeclined, domainErrors.KindOf(err))
}

func TestPaymentService_CreatePaymentIntent(t *testing.T) {
	f := newPaymentFixture(t, 0, "cus_sender")
	ctx := context.Background()

	f.prov.On("CreatePayment", mock.Anything, mock.MatchedBy(func(req *provider.PaymentRequest) bool {
		return !req.Confirm && req.SaveMethod && req.PaymentMethodID == ""
	})).Return(&provider.Payment{
		ID:           "pi_intent",
		ClientSecret: "pi_intent_secret",
		Amount:       1500,
		Currency:     "usd",
		Status:       "requires_payment_method",
		Destination:  "acct_recipient",
	}, nil)

	result, err := f.svc.CreatePaymentIntent(ctx, f.sender.ID, &PaymentIntentInput{
		Amount:             1500,
		RecipientAccountID: f.recipient.ID,
		SavePaymentMethod:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_intent_secret", result.ClientSecret)
	assert.Equal(t, f.recipient.ID, result.Recipient)
}

func TestPaymentService_SendMoney(t *testing.T) {
	f := newPaymentFixture(t, 0, "cus_sender")
	ctx := context.Background()

	f.prov.On("CreateTransfer", mock.Anything, mock.MatchedBy(func(req *provider.TransferRequest) bool {
		return req.Amount == 2000 &&
			req.Currency == "usd" &&
			req.Destination == "acct_recipient"
	})).Return(&provider.Transfer{
		ID:          "tr_1",
		Amount:      2000,
		Currency:    "usd",
		Destination: "acct_recipient",
		Created:     1700000000,
	}, nil)

	result, err := f.svc.SendMoney(ctx, f.sender.ID, &SendMoneyInput{
		Amount:               2000,
		DestinationAccountID: f.recipient.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), result.Amount)
	assert.Equal(t, f.recipient.ID, result.Destination)
	assert.Equal(t, "transferred", result.Status)
}

func TestPaymentService_SendMoneyUnknownDestination(t *testing.T) {
	f := newPaymentFixture(t, 0, "cus_sender")

	_, err := f.svc.SendMoney(context.Background(), f.sender.ID, &SendMoneyInput{
		Amount:               2000,
		DestinationAccountID: "plat_ffffffffffffffff",
	})
	assert.Equal(t, domainErrors.KindNotFound, domainErrors.KindOf(err))
	f.prov.AssertNotCalled(t, "CreateTransfer", mock.Anything, mock.Anything)
}
