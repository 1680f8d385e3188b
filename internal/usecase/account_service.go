package usecase

import (
	"context"

	"go.uber.org/zap"

	domainErrors "github.com/wekeepgrowing/connect-demo/internal/domain/errors"
	"github.com/wekeepgrowing/connect-demo/internal/domain/model"
	"github.com/wekeepgrowing/connect-demo/internal/domain/provider"
	"github.com/wekeepgrowing/connect-demo/internal/domain/repository"
)

// AccountService drives the platform-account lifecycle: it keeps the
// record store and the Stripe connected account in step.
type AccountService struct {
	accounts       repository.AccountRepository
	provider       provider.Provider
	defaultCountry string
	logger         *zap.Logger
}

func NewAccountService(
	accounts repository.AccountRepository,
	prov provider.Provider,
	defaultCountry string,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accounts:       accounts,
		provider:       prov,
		defaultCountry: defaultCountry,
		logger:         logger,
	}
}

// AccountView is the merged platform + Stripe view returned by account
// operations.
type AccountView struct {
	ID               string `json:"id"`
	StripeAccountID  string `json:"stripe_account_id"`
	StripeCustomerID string `json:"stripe_customer_id"`
	Email            string `json:"email"`
	DisplayName      string `json:"display_name"`
	Created          int64  `json:"created"`
	IsCustomer       bool   `json:"is_customer"`
	IsRecipient      bool   `json:"is_recipient"`
}

// AccountDetail extends the view with onboarding state for single-account reads.
type AccountDetail struct {
	AccountView
	IsOnboarding       bool     `json:"is_onboarding"`
	CardPaymentsStatus string   `json:"card_payments_status"`
	TransfersStatus    string   `json:"transfers_status"`
	RequirementsDue    []string `json:"requirements_due"`
}

// DeletionResult reports which Stripe sub-resources were actually
// cleaned up. Deletion of the local record is the only guaranteed
// postcondition; cleanup failures are recorded, not surfaced as errors.
type DeletionResult struct {
	Status                string `json:"status"`
	AccountID             string `json:"account_id"`
	StripeAccountCleaned  bool   `json:"stripe_account_cleaned"`
	StripeCustomerCleaned bool   `json:"stripe_customer_cleaned"`
}

// UpgradeResult describes the account after the one-way transition to
// recipient.
type UpgradeResult struct {
	ID              string `json:"id"`
	StripeAccountID string `json:"stripe_account_id"`
	IsRecipient     bool   `json:"is_recipient"`
	TransfersStatus string `json:"transfers_status"`
}

type OnboardingLinkResult struct {
	URL       string `json:"url"`
	Created   int64  `json:"created"`
	ExpiresAt int64  `json:"expires_at"`
}

func (s *AccountService) Create(ctx context.Context, name, email, country string) (*AccountView, error) {
	if country == "" {
		country = s.defaultCountry
	}

	account, err := s.provider.CreateAccount(ctx, &provider.CreateAccountRequest{
		Name:    name,
		Email:   email,
		Country: country,
	})
	if err != nil {
		return nil, err
	}

	record, err := s.accounts.Create(ctx, email, account.ID, "")
	if err != nil {
		return nil, err
	}

	s.logger.Info("created platform account",
		zap.String("account_id", record.ID),
		zap.String("stripe_account_id", account.ID))

	return mergeView(record, account), nil
}

func (s *AccountService) Get(ctx context.Context, id string) (*AccountDetail, error) {
	record, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domainErrors.NotFound("Account not found")
	}

	account, err := s.provider.GetAccount(ctx, record.StripeAccountID)
	if err != nil {
		return nil, err
	}

	detail := &AccountDetail{
		AccountView:        *mergeView(record, account),
		IsOnboarding:       account.Restricted(),
		CardPaymentsStatus: account.CardPaymentsStatus,
		TransfersStatus:    account.TransfersStatus,
		RequirementsDue:    account.RequirementsDue,
	}
	if detail.RequirementsDue == nil {
		detail.RequirementsDue = []string{}
	}
	return detail, nil
}

// List returns every platform account, enriched with the Stripe view
// where available. A record whose Stripe account is gone (deleted
// out-of-band) degrades to the local fields with all capability flags
// false instead of failing the whole listing.
func (s *AccountService) List(ctx context.Context) ([]*AccountView, error) {
	records, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*AccountView, 0, len(records))
	for _, record := range records {
		account, err := s.provider.GetAccount(ctx, record.StripeAccountID)
		if err != nil {
			s.logger.Warn("falling back to local record",
				zap.String("account_id", record.ID),
				zap.String("stripe_account_id", record.StripeAccountID),
				zap.Error(err))
			views = append(views, &AccountView{
				ID:               record.ID,
				StripeAccountID:  record.StripeAccountID,
				StripeCustomerID: record.StripeCustomerID,
				Email:            record.Email,
			})
			continue
		}
		views = append(views, mergeView(record, account))
	}
	return views, nil
}

// Delete removes the local record unconditionally after best-effort
// cleanup of the Stripe account and customer.
func (s *AccountService) Delete(ctx context.Context, id string) (*DeletionResult, error) {
	record, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domainErrors.NotFound("Account not found")
	}

	result := &DeletionResult{
		Status:                "deleted",
		AccountID:             id,
		StripeAccountCleaned:  true,
		StripeCustomerCleaned: true,
	}

	if err := s.provider.DeleteAccount(ctx, record.StripeAccountID); err != nil {
		result.StripeAccountCleaned = false
		s.logger.Warn("could not delete stripe account",
			zap.String("stripe_account_id", record.StripeAccountID),
			zap.Error(err))
	}
	if record.StripeCustomerID != "" {
		if err := s.provider.DeleteCustomer(ctx, record.StripeCustomerID); err != nil {
			result.StripeCustomerCleaned = false
			s.logger.Warn("could not delete stripe customer",
				zap.String("stripe_customer_id", record.StripeCustomerID),
				zap.Error(err))
		}
	}

	if _, err := s.accounts.Delete(ctx, id); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *AccountService) UpgradeToRecipient(ctx context.Context, id string) (*UpgradeResult, error) {
	record, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domainErrors.NotFound("Account not found")
	}

	account, err := s.provider.UpgradeToRecipient(ctx, record.StripeAccountID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("upgraded account to recipient",
		zap.String("account_id", id),
		zap.String("stripe_account_id", account.ID))

	return &UpgradeResult{
		ID:              record.ID,
		StripeAccountID: account.ID,
		IsRecipient:     account.TransfersRequested(),
		TransfersStatus: account.TransfersStatus,
	}, nil
}

// OnboardingLink issues a hosted-onboarding link. The recipient
// configuration must already be applied; this never applies it lazily.
func (s *AccountService) OnboardingLink(ctx context.Context, id, refreshURL, returnURL string) (*OnboardingLinkResult, error) {
	record, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domainErrors.NotFound("Account not found")
	}

	account, err := s.provider.GetAccount(ctx, record.StripeAccountID)
	if err != nil {
		return nil, err
	}
	if !account.TransfersRequested() {
		return nil, domainErrors.Validation("Account must be a recipient to create an onboarding link")
	}

	link, err := s.provider.CreateOnboardingLink(ctx, &provider.OnboardingLinkRequest{
		StripeAccountID: record.StripeAccountID,
		RefreshURL:      refreshURL,
		ReturnURL:       returnURL,
	})
	if err != nil {
		return nil, err
	}

	return &OnboardingLinkResult{
		URL:       link.URL,
		Created:   link.Created,
		ExpiresAt: link.ExpiresAt,
	}, nil
}

func mergeView(record *model.PlatformAccount, account *provider.Account) *AccountView {
	email := account.Email
	if email == "" {
		email = record.Email
	}
	return &AccountView{
		ID:               record.ID,
		StripeAccountID:  record.StripeAccountID,
		StripeCustomerID: record.StripeCustomerID,
		Email:            email,
		DisplayName:      account.DisplayName,
		Created:          account.Created,
		IsCustomer:       record.StripeCustomerID != "",
		IsRecipient:      account.TransfersRequested(),
	}
}
