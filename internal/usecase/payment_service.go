package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/wekeepgrowing/connect-demo/internal/domain/errors"
	"github.com/wekeepgrowing/connect-demo/internal/domain/model"
	"github.com/wekeepgrowing/connect-demo/internal/domain/provider"
	"github.com/wekeepgrowing/connect-demo/internal/domain/repository"
)

// PaymentService orchestrates money movement between two platform
// accounts via destination charges and platform transfers.
type PaymentService struct {
	accounts        repository.AccountRepository
	correlation     *CorrelationService
	provider        provider.Provider
	feeBps          int64
	defaultCurrency string
	logger          *zap.Logger
}

func NewPaymentService(
	accounts repository.AccountRepository,
	correlation *CorrelationService,
	prov provider.Provider,
	feeBps int64,
	defaultCurrency string,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		accounts:        accounts,
		correlation:     correlation,
		provider:        prov,
		feeBps:          feeBps,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

type PayUserInput struct {
	Amount             int64
	Currency           string
	RecipientAccountID string
	PaymentMethodID    string
}

// Receipt is the normalized result of a confirmed destination charge.
type Receipt struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	Recipient string `json:"recipient"`
	Transfer  string `json:"transfer"`
	Created   int64  `json:"created"`
}

type PaymentIntentInput struct {
	Amount             int64
	Currency           string
	RecipientAccountID string
	SavePaymentMethod  bool
}

type PaymentIntentResult struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Recipient       string `json:"recipient"`
}

type SendMoneyInput struct {
	Amount               int64
	Currency             string
	DestinationAccountID string
}

type SendMoneyResult struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	Destination string `json:"destination"`
	Created     int64  `json:"created"`
}

// PayUser charges the sender's instrument and routes the funds to the
// recipient's connected account in a single destination charge.
func (s *PaymentService) PayUser(ctx context.Context, senderID string, input *PayUserInput) (*Receipt, error) {
	sender, recipient, customerID, err := s.resolveParticipants(ctx, senderID, input.RecipientAccountID)
	if err != nil {
		return nil, err
	}

	// Attach the instrument only when it is not already on this
	// customer; re-attaching an attached method is a Stripe error.
	method, err := s.provider.GetPaymentMethod(ctx, input.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if method.CustomerID != customerID {
		if err := s.provider.AttachPaymentMethod(ctx, input.PaymentMethodID, customerID); err != nil {
			return nil, err
		}
	}

	payment, err := s.provider.CreatePayment(ctx, &provider.PaymentRequest{
		Amount:          input.Amount,
		Currency:        s.currency(input.Currency),
		CustomerID:      customerID,
		PaymentMethodID: input.PaymentMethodID,
		Destination:     recipient.StripeAccountID,
		ApplicationFee:  s.applicationFee(input.Amount),
		Confirm:         true,
		Metadata:        paymentMetadata(senderID, sender, input.RecipientAccountID, recipient),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment completed",
		zap.String("payment_id", payment.ID),
		zap.String("sender", senderID),
		zap.String("recipient", input.RecipientAccountID),
		zap.Int64("amount", payment.Amount))

	return &Receipt{
		ID:        payment.ID,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		Status:    payment.Status,
		Recipient: input.RecipientAccountID,
		Transfer:  payment.Destination,
		Created:   payment.Created,
	}, nil
}

// CreatePaymentIntent prepares an unconfirmed destination charge and
// hands the client secret back for client-side confirmation.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, senderID string, input *PaymentIntentInput) (*PaymentIntentResult, error) {
	sender, recipient, customerID, err := s.resolveParticipants(ctx, senderID, input.RecipientAccountID)
	if err != nil {
		return nil, err
	}

	payment, err := s.provider.CreatePayment(ctx, &provider.PaymentRequest{
		Amount:         input.Amount,
		Currency:       s.currency(input.Currency),
		CustomerID:     customerID,
		Destination:    recipient.StripeAccountID,
		ApplicationFee: s.applicationFee(input.Amount),
		SaveMethod:     input.SavePaymentMethod,
		Metadata:       paymentMetadata(senderID, sender, input.RecipientAccountID, recipient),
	})
	if err != nil {
		return nil, err
	}

	return &PaymentIntentResult{
		ClientSecret:    payment.ClientSecret,
		PaymentIntentID: payment.ID,
		Amount:          payment.Amount,
		Currency:        payment.Currency,
		Recipient:       input.RecipientAccountID,
	}, nil
}

// SendMoney moves funds from the platform balance straight to the
// destination account, no instrument involved.
func (s *PaymentService) SendMoney(ctx context.Context, senderID string, input *SendMoneyInput) (*SendMoneyResult, error) {
	sender, err := s.accounts.Get(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, domainErrors.NotFound("Sender account not found")
	}
	destination, err := s.accounts.Get(ctx, input.DestinationAccountID)
	if err != nil {
		return nil, err
	}
	if destination == nil {
		return nil, domainErrors.NotFound("Destination account not found")
	}

	transfer, err := s.provider.CreateTransfer(ctx, &provider.TransferRequest{
		Amount:      input.Amount,
		Currency:    s.currency(input.Currency),
		Destination: destination.StripeAccountID,
		Metadata:    paymentMetadata(senderID, sender, input.DestinationAccountID, destination),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("transfer completed",
		zap.String("transfer_id", transfer.ID),
		zap.String("sender", senderID),
		zap.String("destination", input.DestinationAccountID),
		zap.Int64("amount", transfer.Amount))

	return &SendMoneyResult{
		ID:          transfer.ID,
		Amount:      transfer.Amount,
		Currency:    transfer.Currency,
		Status:      "transferred",
		Destination: input.DestinationAccountID,
		Created:     transfer.Created,
	}, nil
}

// resolveParticipants loads both records and the sender's customer id.
// A sender without a customer fails before any charge call is made.
func (s *PaymentService) resolveParticipants(ctx context.Context, senderID, recipientID string) (*model.PlatformAccount, *model.PlatformAccount, string, error) {
	sender, err := s.accounts.Get(ctx, senderID)
	if err != nil {
		return nil, nil, "", err
	}
	if sender == nil {
		return nil, nil, "", domainErrors.NotFound("Sender account not found")
	}

	recipient, err := s.accounts.Get(ctx, recipientID)
	if err != nil {
		return nil, nil, "", err
	}
	if recipient == nil {
		return nil, nil, "", domainErrors.NotFound("Recipient account not found")
	}

	customerID, err := s.correlation.ResolveCustomerID(ctx, sender.StripeAccountID)
	if err != nil {
		return nil, nil, "", err
	}
	if customerID == "" {
		return nil, nil, "", domainErrors.Validation("Sender has no customer ID")
	}
	return sender, recipient, customerID, nil
}

func (s *PaymentService) currency(currency string) string {
	if currency == "" {
		return s.defaultCurrency
	}
	return currency
}

// applicationFee computes the platform cut in the smallest currency
// unit, truncated toward zero.
func (s *PaymentService) applicationFee(amount int64) int64 {
	if s.feeBps <= 0 {
		return 0
	}
	fee := decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(s.feeBps)).
		Div(decimal.NewFromInt(10000))
	return fee.IntPart()
}

func paymentMetadata(senderID string, sender *model.PlatformAccount, recipientID string, recipient *model.PlatformAccount) map[string]string {
	return map[string]string{
		"sender_platform_id":       senderID,
		"recipient_platform_id":    recipientID,
		"sender_stripe_account":    sender.StripeAccountID,
		"recipient_stripe_account": recipient.StripeAccountID,
	}
}
