package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses mirror the gateway's payment intent statuses; a booking
// only ever stores "succeeded" or "canceled", the rest appear when a confirm
// attempt is rejected.
const (
	PaymentSucceeded             = "succeeded"
	PaymentProcessing            = "processing"
	PaymentRequiresPaymentMethod = "requires_payment_method"
	PaymentRequiresAction        = "requires_action"
	PaymentCanceled              = "canceled"
	PaymentFailed                = "failed"
)

// EventSummary is the slice of event fields denormalized into booking
// listings so clients don't need a second lookup.
type EventSummary struct {
	EventName  string    `json:"eventName"`
	ArtistName string    `json:"artistName,omitempty"`
	Date       time.Time `json:"date"`
	Time       string    `json:"time,omitempty"`
	Location   string    `json:"location"`
	Image      string    `json:"image,omitempty"`
}

type Booking struct {
	ID              int64           `json:"id"`
	EventID         int64           `json:"eventId"`
	UserID          string          `json:"userId,omitempty"`
	CustomerName    string          `json:"customerName,omitempty"`
	CustomerEmail   string          `json:"customerEmail"`
	Section         string          `json:"section"`
	Quantity        int             `json:"quantity"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Currency        string          `json:"currency"`
	PaymentIntentID string          `json:"paymentIntentId"`
	PaymentStatus   string          `json:"paymentStatus"`
	CreatedAt       time.Time       `json:"createdAt"`
	Event           *EventSummary   `json:"event,omitempty"`
}
