package booking

import (
	"errors"
	"fmt"
)

var (
	ErrMissingPaymentIntent = errors.New("payment intent id is required")
	ErrMissingMetadata      = errors.New("missing booking metadata on payment intent")

	// ErrNoIdentity means the requester carries neither a user id nor an
	// email and so can't be matched against any booking.
	ErrNoIdentity = errors.New("requester has no identity")
	ErrNotAllowed = errors.New("requester does not own this booking")
)

// PaymentNotSucceededError rejects a confirm attempt against an intent that
// the gateway does not report as succeeded, carrying the current status so
// the client can tell a pending payment from a failed one.
type PaymentNotSucceededError struct {
	Status string
}

func (e *PaymentNotSucceededError) Error() string {
	return fmt.Sprintf("payment not succeeded, current status: %s", e.Status)
}
