package repository

import (
	"context"

	"github.com/wekeepgrowing/connect-demo/internal/domain/model"
)

// AccountRepository persists PlatformAccount records keyed by their
// platform id. Lookups that miss return (nil, nil).
type AccountRepository interface {
	Create(ctx context.Context, email, stripeAccountID, stripeCustomerID string) (*model.PlatformAccount, error)
	Get(ctx context.Context, id string) (*model.PlatformAccount, error)
	GetByStripeAccountID(ctx context.Context, stripeAccountID string) (*model.PlatformAccount, error)
	List(ctx context.Context) ([]*model.PlatformAccount, error)
	Update(ctx context.Context, id string, updates model.AccountUpdates) (*model.PlatformAccount, error)
	// Delete reports whether a record existed.
	Delete(ctx context.Context, id string) (bool, error)
}
