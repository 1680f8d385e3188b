package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PlatformAccount correlates a platform-generated identity with the
// Stripe entities that back it. It is the only persisted record in the
// system.
type PlatformAccount struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	StripeAccountID string `json:"stripe_account_id"`
	// StripeCustomerID is empty until a customer is created for the
	// account; once set the account is considered payment-capable.
	StripeCustomerID string `json:"stripe_customer_id"`
}

// NewAccountID generates a platform account id of the form
// plat_<16 lowercase hex chars>. Uniqueness rests on UUID entropy and
// is not policed by an index.
func NewAccountID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("plat_%s", hex[:16])
}

// AccountUpdates is a partial update applied to an existing record.
// Nil fields are left untouched.
type AccountUpdates struct {
	Email            *string
	StripeCustomerID *string
}
