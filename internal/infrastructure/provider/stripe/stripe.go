package stripe

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/connect-demo/internal/domain/provider"
)

// Provider implements provider.Provider against Stripe. The API key
// lives in a client constructed once at startup; nothing mutates
// process-global state per call.
type Provider struct {
	api    *client.API
	logger *zap.Logger
}

func NewProvider(secretKey string, logger *zap.Logger) *Provider {
	return &Provider{
		api:    client.New(secretKey, nil),
		logger: logger,
	}
}

// metadataAccountKey tags customers (and the account itself) with the
// connected account id so the correlation can be re-derived by search.
const metadataAccountKey = "account_id"

func (p *Provider) CreateAccount(ctx context.Context, req *provider.CreateAccountRequest) (*provider.Account, error) {
	params := &stripe.AccountParams{
		Type:    stripe.String(string(stripe.AccountTypeCustom)),
		Country: stripe.String(req.Country),
		Email:   stripe.String(req.Email),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{
				Requested: stripe.Bool(true),
			},
		},
		BusinessType: stripe.String(string(stripe.AccountBusinessTypeIndividual)),
		BusinessProfile: &stripe.AccountBusinessProfileParams{
			Name: stripe.String(req.Name),
			MCC:  stripe.String("5734"),
			URL:  stripe.String("https://example.com"),
		},
		// Test-mode identity so the account is usable without manual
		// onboarding.
		Individual: &stripe.PersonParams{
			FirstName: stripe.String("Test"),
			LastName:  stripe.String("User"),
			Email:     stripe.String(req.Email),
			DOB: &stripe.PersonDOBParams{
				Day:   stripe.Int64(1),
				Month: stripe.Int64(1),
				Year:  stripe.Int64(1990),
			},
			Address: &stripe.AddressParams{
				Line1:      stripe.String("123 Test St"),
				City:       stripe.String("San Francisco"),
				State:      stripe.String("CA"),
				PostalCode: stripe.String("94111"),
				Country:    stripe.String(req.Country),
			},
			SSNLast4: stripe.String("0000"),
		},
		TOSAcceptance: &stripe.AccountTOSAcceptanceParams{
			Date: stripe.Int64(time.Now().Unix()),
			IP:   stripe.String("127.0.0.1"),
		},
	}
	params.Context = ctx

	account, err := p.api.Accounts.New(params)
	if err != nil {
		return nil, translateError(err, "failed to create account")
	}

	// Tag the account with its own id; the tag can only be applied
	// once the id is known.
	updateParams := &stripe.AccountParams{}
	updateParams.Context = ctx
	updateParams.AddMetadata(metadataAccountKey, account.ID)
	if _, err := p.api.Accounts.Update(account.ID, updateParams); err != nil {
		p.logger.Warn("failed to tag account metadata",
			zap.String("stripe_account_id", account.ID),
			zap.Error(err))
	}

	return toAccount(account), nil
}

func (p *Provider) GetAccount(ctx context.Context, stripeAccountID string) (*provider.Account, error) {
	params := &stripe.AccountParams{}
	params.Context = ctx

	account, err := p.api.Accounts.GetByID(stripeAccountID, params)
	if err != nil {
		return nil, translateError(err, "failed to retrieve account")
	}
	return toAccount(account), nil
}

func (p *Provider) DeleteAccount(ctx context.Context, stripeAccountID string) error {
	params := &stripe.AccountParams{}
	params.Context = ctx

	if _, err := p.api.Accounts.Del(stripeAccountID, params); err != nil {
		return translateError(err, "failed to delete account")
	}
	return nil
}

func (p *Provider) UpgradeToRecipient(ctx context.Context, stripeAccountID string) (*provider.Account, error) {
	params := &stripe.AccountParams{
		Capabilities: &stripe.AccountCapabilitiesParams{
			Transfers: &stripe.AccountCapabilitiesTransfersParams{
				Requested: stripe.Bool(true),
			},
		},
	}
	params.Context = ctx

	account, err := p.api.Accounts.Update(stripeAccountID, params)
	if err != nil {
		return nil, translateError(err, "failed to upgrade account")
	}
	return toAccount(account), nil
}

func (p *Provider) CreateOnboardingLink(ctx context.Context, req *provider.OnboardingLinkRequest) (*provider.OnboardingLink, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(req.StripeAccountID),
		RefreshURL: stripe.String(req.RefreshURL),
		ReturnURL:  stripe.String(req.ReturnURL),
		Type:       stripe.String("account_onboarding"),
	}
	params.Context = ctx

	link, err := p.api.AccountLinks.New(params)
	if err != nil {
		return nil, translateError(err, "failed to create onboarding link")
	}
	return &provider.OnboardingLink{
		URL:       link.URL,
		Created:   link.Created,
		ExpiresAt: link.ExpiresAt,
	}, nil
}

func (p *Provider) CreateCustomer(ctx context.Context, req *provider.CreateCustomerRequest) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(req.Email),
		Name:  stripe.String(req.Name),
	}
	params.Context = ctx
	params.AddMetadata(metadataAccountKey, req.StripeAccountID)

	customer, err := p.api.Customers.New(params)
	if err != nil {
		return "", translateError(err, "failed to create customer")
	}
	return customer.ID, nil
}

func (p *Provider) DeleteCustomer(ctx context.Context, customerID string) error {
	params := &stripe.CustomerParams{}
	params.Context = ctx

	if _, err := p.api.Customers.Del(customerID, params); err != nil {
		return translateError(err, "failed to delete customer")
	}
	return nil
}

func (p *Provider) FindCustomerByAccountID(ctx context.Context, stripeAccountID string) (string, error) {
	params := &stripe.CustomerSearchParams{
		SearchParams: stripe.SearchParams{
			Query:   fmt.Sprintf("metadata['%s']:'%s'", metadataAccountKey, stripeAccountID),
			Context: ctx,
		},
	}

	iter := p.api.Customers.Search(params)
	for iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", translateError(err, "failed to search customers")
	}
	return "", nil
}

func (p *Provider) CreatePayment(ctx context.Context, req *provider.PaymentRequest) (*provider.Payment, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
		Customer: stripe.String(req.CustomerID),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(req.Destination),
		},
	}
	params.Context = ctx

	if req.PaymentMethodID != "" {
		params.PaymentMethod = stripe.String(req.PaymentMethodID)
	}
	if req.Confirm {
		params.Confirm = stripe.Bool(true)
		params.OffSession = stripe.Bool(true)
	}
	if req.SaveMethod {
		params.SetupFutureUsage = stripe.String(string(stripe.PaymentIntentSetupFutureUsageOffSession))
	}
	if req.ApplicationFee > 0 {
		params.ApplicationFeeAmount = stripe.Int64(req.ApplicationFee)
	}
	for key, value := range req.Metadata {
		params.AddMetadata(key, value)
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, translateError(err, "failed to create payment")
	}

	payment := &provider.Payment{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
		Status:       string(intent.Status),
		Created:      intent.Created,
	}
	if intent.TransferData != nil && intent.TransferData.Destination != nil {
		payment.Destination = intent.TransferData.Destination.ID
	}
	return payment, nil
}

func (p *Provider) CreateTransfer(ctx context.Context, req *provider.TransferRequest) (*provider.Transfer, error) {
	params := &stripe.TransferParams{
		Amount:      stripe.Int64(req.Amount),
		Currency:    stripe.String(req.Currency),
		Destination: stripe.String(req.Destination),
	}
	params.Context = ctx
	for key, value := range req.Metadata {
		params.AddMetadata(key, value)
	}

	transfer, err := p.api.Transfers.New(params)
	if err != nil {
		return nil, translateError(err, "failed to create transfer")
	}

	out := &provider.Transfer{
		ID:       transfer.ID,
		Amount:   transfer.Amount,
		Currency: string(transfer.Currency),
		Created:  transfer.Created,
	}
	if transfer.Destination != nil {
		out.Destination = transfer.Destination.ID
	}
	return out, nil
}

func (p *Provider) CreateSetupIntent(ctx context.Context, customerID string) (*provider.SetupIntent, error) {
	params := &stripe.SetupIntentParams{
		Customer:           stripe.String(customerID),
		Usage:              stripe.String(string(stripe.SetupIntentUsageOffSession)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := p.api.SetupIntents.New(params)
	if err != nil {
		return nil, translateError(err, "failed to create setup intent")
	}
	return &provider.SetupIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		CustomerID:   customerID,
	}, nil
}

func (p *Provider) GetPaymentMethod(ctx context.Context, paymentMethodID string) (*provider.PaymentMethod, error) {
	params := &stripe.PaymentMethodParams{}
	params.Context = ctx

	pm, err := p.api.PaymentMethods.Get(paymentMethodID, params)
	if err != nil {
		return nil, translateError(err, "failed to retrieve payment method")
	}
	return toPaymentMethod(pm), nil
}

func (p *Provider) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error {
	params := &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx

	if _, err := p.api.PaymentMethods.Attach(paymentMethodID, params); err != nil {
		return translateError(err, "failed to attach payment method")
	}
	return nil
}

func (p *Provider) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	params := &stripe.PaymentMethodDetachParams{}
	params.Context = ctx

	if _, err := p.api.PaymentMethods.Detach(paymentMethodID, params); err != nil {
		return translateError(err, "failed to detach payment method")
	}
	return nil
}

func (p *Provider) ListCardPaymentMethods(ctx context.Context, customerID string) ([]*provider.PaymentMethod, error) {
	params := &stripe.PaymentMethodListParams{
		Customer: stripe.String(customerID),
		Type:     stripe.String(string(stripe.PaymentMethodTypeCard)),
	}
	params.Context = ctx

	var methods []*provider.PaymentMethod
	iter := p.api.PaymentMethods.List(params)
	for iter.Next() {
		methods = append(methods, toPaymentMethod(iter.PaymentMethod()))
	}
	if err := iter.Err(); err != nil {
		return nil, translateError(err, "failed to list payment methods")
	}
	return methods, nil
}

func (p *Provider) AddBankAccount(ctx context.Context, stripeAccountID, token string) (*provider.BankAccount, error) {
	params := &stripe.BankAccountParams{
		Account: stripe.String(stripeAccountID),
		Token:   stripe.String(token),
	}
	params.Context = ctx

	bank, err := p.api.BankAccounts.New(params)
	if err != nil {
		return nil, translateError(err, "failed to add bank account")
	}
	return toBankAccount(bank), nil
}

func (p *Provider) ListBankAccounts(ctx context.Context, stripeAccountID string) ([]*provider.BankAccount, error) {
	params := &stripe.BankAccountListParams{
		Account: stripe.String(stripeAccountID),
	}
	params.Context = ctx

	var banks []*provider.BankAccount
	iter := p.api.BankAccounts.List(params)
	for iter.Next() {
		banks = append(banks, toBankAccount(iter.BankAccount()))
	}
	if err := iter.Err(); err != nil {
		return nil, translateError(err, "failed to list bank accounts")
	}
	return banks, nil
}

func (p *Provider) DeleteBankAccount(ctx context.Context, stripeAccountID, bankAccountID string) error {
	params := &stripe.BankAccountParams{
		Account: stripe.String(stripeAccountID),
	}
	params.Context = ctx

	if _, err := p.api.BankAccounts.Del(bankAccountID, params); err != nil {
		return translateError(err, "failed to delete bank account")
	}
	return nil
}

func (p *Provider) SetDefaultBankAccount(ctx context.Context, stripeAccountID, bankAccountID string) (*provider.BankAccount, error) {
	params := &stripe.BankAccountParams{
		Account:            stripe.String(stripeAccountID),
		DefaultForCurrency: stripe.Bool(true),
	}
	params.Context = ctx

	bank, err := p.api.BankAccounts.Update(bankAccountID, params)
	if err != nil {
		return nil, translateError(err, "failed to set default bank account")
	}
	return toBankAccount(bank), nil
}

func toAccount(account *stripe.Account) *provider.Account {
	out := &provider.Account{
		ID:               account.ID,
		Email:            account.Email,
		Created:          account.Created,
		ChargesEnabled:   account.ChargesEnabled,
		PayoutsEnabled:   account.PayoutsEnabled,
		DetailsSubmitted: account.DetailsSubmitted,
	}
	if account.BusinessProfile != nil {
		out.DisplayName = account.BusinessProfile.Name
	}
	if account.Capabilities != nil {
		out.CardPaymentsStatus = string(account.Capabilities.CardPayments)
		out.TransfersStatus = string(account.Capabilities.Transfers)
	}
	if account.Requirements != nil {
		out.RequirementsDue = account.Requirements.CurrentlyDue
	}
	return out
}

func toPaymentMethod(pm *stripe.PaymentMethod) *provider.PaymentMethod {
	out := &provider.PaymentMethod{
		ID:      pm.ID,
		Type:    string(pm.Type),
		Created: pm.Created,
	}
	if pm.Customer != nil {
		out.CustomerID = pm.Customer.ID
	}
	if pm.Card != nil {
		out.Card = &provider.CardDetails{
			Brand:    string(pm.Card.Brand),
			Last4:    pm.Card.Last4,
			ExpMonth: pm.Card.ExpMonth,
			ExpYear:  pm.Card.ExpYear,
		}
	}
	return out
}

func toBankAccount(bank *stripe.BankAccount) *provider.BankAccount {
	return &provider.BankAccount{
		ID:                 bank.ID,
		BankName:           bank.BankName,
		Last4:              bank.Last4,
		RoutingNumber:      bank.RoutingNumber,
		Currency:           string(bank.Currency),
		Country:            bank.Country,
		DefaultForCurrency: bank.DefaultForCurrency,
		Status:             string(bank.Status),
	}
}
