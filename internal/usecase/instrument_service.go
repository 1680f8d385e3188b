package usecase

import (
	"context"

	"go.uber.org/zap"

	domainErrors "github.com/wekeepgrowing/connect-demo/internal/domain/errors"
	"github.com/wekeepgrowing/connect-demo/internal/domain/model"
	"github.com/wekeepgrowing/connect-demo/internal/domain/provider"
	"github.com/wekeepgrowing/connect-demo/internal/domain/repository"
)

// InstrumentService manages card instruments held by an account's
// customer and bank external accounts on its connected account.
type InstrumentService struct {
	accounts    repository.AccountRepository
	correlation *CorrelationService
	provider    provider.Provider
	logger      *zap.Logger
}

func NewInstrumentService(
	accounts repository.AccountRepository,
	correlation *CorrelationService,
	prov provider.Provider,
	logger *zap.Logger,
) *InstrumentService {
	return &InstrumentService{
		accounts:    accounts,
		correlation: correlation,
		provider:    prov,
		logger:      logger,
	}
}

type SetupIntentResult struct {
	ClientSecret  string `json:"client_secret"`
	SetupIntentID string `json:"setup_intent_id"`
	CustomerID    string `json:"customer_id"`
}

type CardView struct {
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int64  `json:"exp_month"`
	ExpYear  int64  `json:"exp_year"`
}

type PaymentMethodView struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Card    *CardView `json:"card"`
	Created int64     `json:"created"`
}

type BankAccountView struct {
	ID                 string `json:"id"`
	Object             string `json:"object"`
	BankName           string `json:"bank_name"`
	Last4              string `json:"last4"`
	RoutingNumber      string `json:"routing_number"`
	Currency           string `json:"currency"`
	Country            string `json:"country"`
	DefaultForCurrency bool   `json:"default_for_currency"`
	Status             string `json:"status"`
}

// CreateSetupIntent prepares collection of a reusable card instrument,
// creating the account's customer on first use.
func (s *InstrumentService) CreateSetupIntent(ctx context.Context, accountID string) (*SetupIntentResult, error) {
	record, err := s.requireAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	customerID, err := s.correlation.EnsureCustomerID(ctx, record)
	if err != nil {
		return nil, err
	}

	intent, err := s.provider.CreateSetupIntent(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &SetupIntentResult{
		ClientSecret:  intent.ClientSecret,
		SetupIntentID: intent.ID,
		CustomerID:    customerID,
	}, nil
}

// ListPaymentMethods returns the card instruments on the account's
// customer. An account without a customer has no instruments, which is
// an empty list rather than an error.
func (s *InstrumentService) ListPaymentMethods(ctx context.Context, accountID string) ([]*PaymentMethodView, error) {
	record, err := s.requireAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	customerID, err := s.correlation.ResolveCustomerID(ctx, record.StripeAccountID)
	if err != nil {
		return nil, err
	}
	if customerID == "" {
		return []*PaymentMethodView{}, nil
	}

	methods, err := s.provider.ListCardPaymentMethods(ctx, customerID)
	if err != nil {
		return nil, err
	}

	views := make([]*PaymentMethodView, 0, len(methods))
	for _, method := range methods {
		views = append(views, toPaymentMethodView(method))
	}
	return views, nil
}

// DetachPaymentMethod removes the instrument's attachment. Ownership is
// not verified; any known payment method id is accepted.
func (s *InstrumentService) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	return s.provider.DetachPaymentMethod(ctx, paymentMethodID)
}

func (s *InstrumentService) AddExternalAccount(ctx context.Context, accountID, token string) (*BankAccountView, error) {
	record, err := s.requireAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	bank, err := s.provider.AddBankAccount(ctx, record.StripeAccountID, token)
	if err != nil {
		return nil, err
	}
	return toBankAccountView(bank), nil
}

func (s *InstrumentService) ListExternalAccounts(ctx context.Context, accountID string) ([]*BankAccountView, error) {
	record, err := s.requireAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	banks, err := s.provider.ListBankAccounts(ctx, record.StripeAccountID)
	if err != nil {
		return nil, err
	}

	views := make([]*BankAccountView, 0, len(banks))
	for _, bank := range banks {
		views = append(views, toBankAccountView(bank))
	}
	return views, nil
}

func (s *InstrumentService) DeleteExternalAccount(ctx context.Context, accountID, externalAccountID string) error {
	record, err := s.requireAccount(ctx, accountID)
	if err != nil {
		return err
	}
	return s.provider.DeleteBankAccount(ctx, record.StripeAccountID, externalAccountID)
}

func (s *InstrumentService) SetDefaultExternalAccount(ctx context.Context, accountID, externalAccountID string) (*BankAccountView, error) {
	record, err := s.requireAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	bank, err := s.provider.SetDefaultBankAccount(ctx, record.StripeAccountID, externalAccountID)
	if err != nil {
		return nil, err
	}
	return toBankAccountView(bank), nil
}

func (s *InstrumentService) requireAccount(ctx context.Context, accountID string) (*model.PlatformAccount, error) {
	record, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domainErrors.NotFound("Account not found")
	}
	return record, nil
}

func toPaymentMethodView(method *provider.PaymentMethod) *PaymentMethodView {
	view := &PaymentMethodView{
		ID:      method.ID,
		Type:    method.Type,
		Created: method.Created,
	}
	if method.Card != nil {
		view.Card = &CardView{
			Brand:    method.Card.Brand,
			Last4:    method.Card.Last4,
			ExpMonth: method.Card.ExpMonth,
			ExpYear:  method.Card.ExpYear,
		}
	}
	return view
}

func toBankAccountView(bank *provider.BankAccount) *BankAccountView {
	return &BankAccountView{
		ID:                 bank.ID,
		Object:             "bank_account",
		BankName:           bank.BankName,
		Last4:              bank.Last4,
		RoutingNumber:      bank.RoutingNumber,
		Currency:           bank.Currency,
		Country:            bank.Country,
		DefaultForCurrency: bank.DefaultForCurrency,
		Status:             bank.Status,
	}
}
