package stripe

import (
	"errors"
	"net/http"

	"github.com/stripe/stripe-go/v79"

	domainErrors "github.com/wekeepgrowing/connect-demo/internal/domain/errors"
)

// translateError converts a Stripe failure into the domain taxonomy:
// missing resources map to not-found, card declines keep their own
// kind so callers can surface them distinctly, and everything else is
// a generic external failure carrying Stripe's user-facing message.
func translateError(err error, fallback string) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return domainErrors.External(fallback, err)
	}

	message := stripeErr.Msg
	if message == "" {
		message = fallback
	}

	switch {
	case stripeErr.Type == stripe.ErrorTypeCard:
		if stripeErr.Msg == "" {
			message = "Card was declined"
		}
		return domainErrors.CardDeclined(message, err)
	case stripeErr.HTTPStatusCode == http.StatusNotFound,
		stripeErr.Code == stripe.ErrorCodeResourceMissing:
		return domainErrors.NotFound(message)
	default:
		return domainErrors.External(message, err)
	}
}
