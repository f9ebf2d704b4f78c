// Package stripegw wraps the Stripe API behind a small client the rest of
// the system consumes through an interface, so payment handling can be
// tested without the network and the gateway can be swapped out.
package stripegw

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// ErrIntentNotFound is returned when the gateway has no payment intent or
// charge with the requested id.
var ErrIntentNotFound = errors.New("payment intent not found")

// Intent is the slice of a Stripe payment intent the booking flow needs.
type Intent struct {
	ID             string
	ClientSecret   string
	Status         string
	Currency       string
	Amount         int64
	AmountReceived int64
	ReceiptEmail   string
	LatestChargeID string
	Metadata       map[string]string
}

// Charge carries the billing details used as a fallback when the intent
// itself has no receipt email.
type Charge struct {
	ID           string
	BillingName  string
	BillingEmail string
	ReceiptEmail string
}

type Client struct {
	api *client.API
}

// New builds a gateway client from the configured secret key. The key is
// required: a missing key is a deployment error, not something to discover
// on the first payment.
func New(secretKey string) (*Client, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key is not set")
	}

	api := &client.API{}
	api.Init(secretKey, nil)

	return &Client{api: api}, nil
}

func (c *Client) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return intentFromStripe(pi), nil
}

func (c *Client) Intent(ctx context.Context, id string) (*Intent, error) {
	pi, err := c.api.PaymentIntents.Get(id, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrIntentNotFound
		}
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	return intentFromStripe(pi), nil
}

func (c *Client) Charge(ctx context.Context, id string) (*Charge, error) {
	ch, err := c.api.Charges.Get(id, &stripe.ChargeParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrIntentNotFound
		}
		return nil, fmt.Errorf("failed to retrieve charge: %w", err)
	}

	out := &Charge{
		ID:           ch.ID,
		ReceiptEmail: ch.ReceiptEmail,
	}
	if ch.BillingDetails != nil {
		out.BillingName = ch.BillingDetails.Name
		out.BillingEmail = ch.BillingDetails.Email
	}

	return out, nil
}

func isNotFound(err error) bool {
	var sErr *stripe.Error
	return errors.As(err, &sErr) && sErr.Code == stripe.ErrorCodeResourceMissing
}

func intentFromStripe(pi *stripe.PaymentIntent) *Intent {
	intent := &Intent{
		ID:             pi.ID,
		ClientSecret:   pi.ClientSecret,
		Status:         string(pi.Status),
		Currency:       string(pi.Currency),
		Amount:         pi.Amount,
		AmountReceived: pi.AmountReceived,
		ReceiptEmail:   pi.ReceiptEmail,
		Metadata:       pi.Metadata,
	}
	if pi.LatestCharge != nil {
		intent.LatestChargeID = pi.LatestCharge.ID
	}
	return intent
}
