package provider

import "context"

// Provider defines the payment-platform operations the orchestrators
// depend on. The concrete implementation talks to Stripe; tests use
// mocks.
type Provider interface {
	// Connected accounts
	CreateAccount(ctx context.Context, req *CreateAccountRequest) (*Account, error)
	GetAccount(ctx context.Context, stripeAccountID string) (*Account, error)
	DeleteAccount(ctx context.Context, stripeAccountID string) error
	UpgradeToRecipient(ctx context.Context, stripeAccountID string) (*Account, error)
	CreateOnboardingLink(ctx context.Context, req *OnboardingLinkRequest) (*OnboardingLink, error)

	// Customers
	CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (string, error)
	DeleteCustomer(ctx context.Context, customerID string) error
	// FindCustomerByAccountID searches for a customer tagged with the
	// given Stripe account id in its metadata. Returns "" when absent.
	FindCustomerByAccountID(ctx context.Context, stripeAccountID string) (string, error)

	// Payments
	CreatePayment(ctx context.Context, req *PaymentRequest) (*Payment, error)
	CreateTransfer(ctx context.Context, req *TransferRequest) (*Transfer, error)

	// Instruments
	CreateSetupIntent(ctx context.Context, customerID string) (*SetupIntent, error)
	GetPaymentMethod(ctx context.Context, paymentMethodID string) (*PaymentMethod, error)
	AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error
	DetachPaymentMethod(ctx context.Context, paymentMethodID string) error
	ListCardPaymentMethods(ctx context.Context, customerID string) ([]*PaymentMethod, error)

	// Bank external accounts
	AddBankAccount(ctx context.Context, stripeAccountID, token string) (*BankAccount, error)
	ListBankAccounts(ctx context.Context, stripeAccountID string) ([]*BankAccount, error)
	DeleteBankAccount(ctx context.Context, stripeAccountID, bankAccountID string) error
	SetDefaultBankAccount(ctx context.Context, stripeAccountID, bankAccountID string) (*BankAccount, error)
}

// CreateAccountRequest carries the fields needed to open a connected
// account with the fixed demo defaults applied.
type CreateAccountRequest struct {
	Name    string
	Email   string
	Country string
}

// Account is the provider-side view of a connected account.
type Account struct {
	ID               string
	Email            string
	DisplayName      string
	Created          int64
	ChargesEnabled   bool
	PayoutsEnabled   bool
	DetailsSubmitted bool
	// Capability statuses as reported by the provider. Empty string
	// means the capability was never requested.
	CardPaymentsStatus string
	TransfersStatus    string
	RequirementsDue    []string
}

// TransfersRequested reports whether the payout/transfer capability was
// ever requested on the account (the "recipient" configuration).
func (a *Account) TransfersRequested() bool {
	return a.TransfersStatus != ""
}

// Restricted reports whether payouts or transfers are not yet fully
// enabled, i.e. onboarding is still in progress.
func (a *Account) Restricted() bool {
	return !a.PayoutsEnabled || a.TransfersStatus != "active"
}

type OnboardingLinkRequest struct {
	StripeAccountID string
	RefreshURL      string
	ReturnURL       string
}

type OnboardingLink struct {
	URL       string
	Created   int64
	ExpiresAt int64
}

type CreateCustomerRequest struct {
	// StripeAccountID tags the customer's metadata so the correlation
	// can be re-derived by search.
	StripeAccountID string
	Email           string
	Name            string
}

// PaymentRequest describes a destination charge against a customer's
// instrument, routed to a connected account.
type PaymentRequest struct {
	Amount          int64
	Currency        string
	CustomerID      string
	PaymentMethodID string
	Destination     string
	ApplicationFee  int64
	// Confirm requests immediate off-session confirmation. When false
	// the intent is returned unconfirmed with a client secret.
	Confirm bool
	// SaveMethod requests that the instrument be retained for reuse.
	SaveMethod bool
	Metadata   map[string]string
}

type Payment struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
	Destination  string
	Created      int64
}

// TransferRequest moves funds from the platform balance to a connected
// account.
type TransferRequest struct {
	Amount      int64
	Currency    string
	Destination string
	Metadata    map[string]string
}

type Transfer struct {
	ID          string
	Amount      int64
	Currency    string
	Destination string
	Created     int64
}

type SetupIntent struct {
	ID           string
	ClientSecret string
	CustomerID   string
}

type CardDetails struct {
	Brand    string
	Last4    string
	ExpMonth int64
	ExpYear  int64
}

type PaymentMethod struct {
	ID         string
	Type       string
	CustomerID string
	Card       *CardDetails
	Created    int64
}

type BankAccount struct {
	ID                 string
	BankName           string
	Last4              string
	RoutingNumber      string
	Currency           string
	Country            string
	DefaultForCurrency bool
	Status             string
}
