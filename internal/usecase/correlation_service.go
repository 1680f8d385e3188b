package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/connect-demo/internal/domain/model"
	"github.com/wekeepgrowing/connect-demo/internal/domain/provider"
	"github.com/wekeepgrowing/connect-demo/internal/domain/repository"
)

// CorrelationService bridges platform identity to Stripe billing
// identity. The local record is authoritative; the metadata search
// against Stripe is strictly a fallback, and a hit is written back to
// the record so the next resolve stays local.
type CorrelationService struct {
	accounts repository.AccountRepository
	provider provider.Provider
	logger   *zap.Logger
}

func NewCorrelationService(
	accounts repository.AccountRepository,
	prov provider.Provider,
	logger *zap.Logger,
) *CorrelationService {
	return &CorrelationService{
		accounts: accounts,
		provider: prov,
		logger:   logger,
	}
}

// ResolveCustomerID returns the Stripe customer id correlated with the
// given Stripe account id, or "" when no customer exists yet.
func (s *CorrelationService) ResolveCustomerID(ctx context.Context, stripeAccountID string) (string, error) {
	record, err := s.accounts.GetByStripeAccountID(ctx, stripeAccountID)
	if err != nil {
		return "", err
	}
	if record != nil && record.StripeCustomerID != "" {
		return record.StripeCustomerID, nil
	}

	customerID, err := s.provider.FindCustomerByAccountID(ctx, stripeAccountID)
	if err != nil {
		return "", err
	}
	if customerID == "" {
		return "", nil
	}

	if record != nil {
		s.backfill(ctx, record.ID, customerID)
	}
	return customerID, nil
}

// EnsureCustomerID resolves the customer for the account, lazily
// creating one when none exists. Two racing callers can still both
// observe absence and create duplicate customers; there is no dedup
// lock on the Stripe side.
func (s *CorrelationService) EnsureCustomerID(ctx context.Context, account *model.PlatformAccount) (string, error) {
	customerID, err := s.ResolveCustomerID(ctx, account.StripeAccountID)
	if err != nil {
		return "", err
	}
	if customerID != "" {
		return customerID, nil
	}

	customerID, err = s.provider.CreateCustomer(ctx, &provider.CreateCustomerRequest{
		StripeAccountID: account.StripeAccountID,
		Email:           account.Email,
		Name:            account.Email,
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("created customer for account",
		zap.String("account_id", account.ID),
		zap.String("stripe_customer_id", customerID))

	s.backfill(ctx, account.ID, customerID)
	return customerID, nil
}

// backfill caches a resolved customer id on the local record. Failure
// only costs a re-resolve later, so it is logged and ignored.
func (s *CorrelationService) backfill(ctx context.Context, accountID, customerID string) {
	updates := model.AccountUpdates{StripeCustomerID: &customerID}
	if _, err := s.accounts.Update(ctx, accountID, updates); err != nil {
		s.logger.Warn("failed to backfill customer id",
			zap.String("account_id", accountID),
			zap.String("stripe_customer_id", customerID),
			zap.Error(err))
	}
}
