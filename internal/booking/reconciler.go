// Package booking turns externally confirmed payments into seat inventory
// changes and booking records, and reverses them on cancellation. All
// dependencies come in through the constructor; nothing here talks to a
// global.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"stagepass/internal/lib/logger/sl"
	"stagepass/internal/models"
	"stagepass/internal/payments/stripegw"
	"stagepass/internal/storage"

	"github.com/shopspring/decimal"
)

// Metadata keys attached to a payment intent at creation time and read
// back at confirmation time.
const (
	MetaEventID      = "eventId"
	MetaSection      = "section"
	MetaQuantity     = "qty"
	MetaCustomerName = "customerName"
)

const (
	defaultCurrency = "inr"
	fallbackEmail   = "unknown@example.com"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventStore
type EventStore interface {
	Event(ctx context.Context, id int64) (*models.Event, error)
	ReserveSeats(ctx context.Context, eventID int64, section string, qty int) error
	ReleaseSeats(ctx context.Context, eventID int64, section string, qty int) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingStore
type BookingStore interface {
	Booking(ctx context.Context, id int64) (*models.Booking, error)
	BookingByPaymentIntent(ctx context.Context, paymentIntentID string) (*models.Booking, error)
	CreateBooking(ctx context.Context, b *models.Booking) (*models.Booking, error)
	SetBookingStatus(ctx context.Context, id int64, status string) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PaymentGateway
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*stripegw.Intent, error)
	Intent(ctx context.Context, id string) (*stripegw.Intent, error)
	Charge(ctx context.Context, id string) (*stripegw.Charge, error)
}

type Reconciler struct {
	log      *slog.Logger
	events   EventStore
	bookings BookingStore
	gateway  PaymentGateway
}

func NewReconciler(log *slog.Logger, events EventStore, bookings BookingStore, gateway PaymentGateway) *Reconciler {
	return &Reconciler{
		log:      log,
		events:   events,
		bookings: bookings,
		gateway:  gateway,
	}
}

type intentMetadata struct {
	eventID      int64
	section      string
	qty          int
	customerName string
}

// Confirm resolves a succeeded payment into a booking: it validates the
// intent, reserves the seats it references and records the booking exactly
// once. The duplicate check runs before any inventory mutation, so calling
// Confirm again for the same payment reference returns the existing booking
// (duplicate=true) without touching seat counts.
func (r *Reconciler) Confirm(ctx context.Context, paymentIntentID string, user models.User) (*models.Booking, bool, error) {
	const op = "booking.Confirm"

	if paymentIntentID == "" {
		return nil, false, ErrMissingPaymentIntent
	}

	intent, err := r.gateway.Intent(ctx, paymentIntentID)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	if intent.Status != models.PaymentSucceeded {
		return nil, false, &PaymentNotSucceededError{Status: intent.Status}
	}

	meta, err := parseMetadata(intent.Metadata)
	if err != nil {
		return nil, false, err
	}

	existing, err := r.bookings.BookingByPaymentIntent(ctx, paymentIntentID)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, storage.ErrBookingNotFound) {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	if _, err = r.events.Event(ctx, meta.eventID); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	if err = r.events.ReserveSeats(ctx, meta.eventID, meta.section, meta.qty); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	email, name := r.customerDetails(ctx, intent, meta.customerName)

	amountMinor := intent.AmountReceived
	if amountMinor == 0 {
		amountMinor = intent.Amount
	}
	currency := intent.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	created, err := r.bookings.CreateBooking(ctx, &models.Booking{
		EventID:         meta.eventID,
		UserID:          user.ID,
		CustomerName:    name,
		CustomerEmail:   email,
		Section:         meta.section,
		Quantity:        meta.qty,
		TotalPrice:      decimal.NewFromInt(amountMinor).Div(decimal.NewFromInt(100)).Round(2),
		Currency:        currency,
		PaymentIntentID: paymentIntentID,
		PaymentStatus:   models.PaymentSucceeded,
	})
	if errors.Is(err, storage.ErrDuplicateBooking) {
		// Lost the insert race: a concurrent confirm already booked this
		// payment and decremented inventory, so give back our reservation
		// and converge on the winner's booking.
		if relErr := r.events.ReleaseSeats(ctx, meta.eventID, meta.section, meta.qty); relErr != nil {
			r.log.Error("failed to release seats after duplicate booking",
				sl.Err(relErr),
				slog.Int64("event_id", meta.eventID),
				slog.String("section", meta.section),
			)
		}
		winner, lookErr := r.bookings.BookingByPaymentIntent(ctx, paymentIntentID)
		if lookErr != nil {
			return nil, false, fmt.Errorf("%s: %w", op, lookErr)
		}
		return winner, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return created, false, nil
}

func parseMetadata(meta map[string]string) (intentMetadata, error) {
	var out intentMetadata

	eventID, err := strconv.ParseInt(meta[MetaEventID], 10, 64)
	if err != nil || eventID <= 0 {
		return out, ErrMissingMetadata
	}

	qty, err := strconv.Atoi(meta[MetaQuantity])
	if err != nil || qty <= 0 {
		return out, ErrMissingMetadata
	}

	section := meta[MetaSection]
	if section == "" {
		return out, ErrMissingMetadata
	}

	out.eventID = eventID
	out.section = section
	out.qty = qty
	out.customerName = strings.TrimSpace(meta[MetaCustomerName])
	return out, nil
}

// customerDetails resolves the booking's email and name from the intent,
// falling back to the latest charge's billing details and finally to a
// sentinel address. Gateway failures here are logged, not fatal: the
// booking is worth keeping even without a real email.
func (r *Reconciler) customerDetails(ctx context.Context, intent *stripegw.Intent, metaName string) (email, name string) {
	email = intent.ReceiptEmail
	name = metaName

	if (email == "" || name == "") && intent.LatestChargeID != "" {
		charge, err := r.gateway.Charge(ctx, intent.LatestChargeID)
		if err != nil {
			r.log.Warn("failed to retrieve charge for billing details",
				sl.Err(err),
				slog.String("charge_id", intent.LatestChargeID),
			)
		} else {
			if email == "" {
				email = charge.BillingEmail
			}
			if email == "" {
				email = charge.ReceiptEmail
			}
			if name == "" {
				name = charge.BillingName
			}
		}
	}

	if email == "" {
		email = fallbackEmail
	}
	return email, name
}

// Cancel reverses a booking on behalf of its owner: ownership is matched by
// user id or by customer email. Canceling an already-canceled booking is a
// no-op reported through the second return value.
func (r *Reconciler) Cancel(ctx context.Context, bookingID int64, requester models.User) (*models.Booking, bool, error) {
	const op = "booking.Cancel"

	if requester.Anonymous() {
		return nil, false, ErrNoIdentity
	}

	b, err := r.bookings.Booking(ctx, bookingID)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	ownsByUser := requester.ID != "" && b.UserID == requester.ID
	ownsByEmail := requester.Email != "" && b.CustomerEmail == requester.Email
	if !ownsByUser && !ownsByEmail {
		return nil, false, ErrNotAllowed
	}

	return r.cancel(ctx, b)
}

// AdminCancel cancels any booking without an ownership check.
func (r *Reconciler) AdminCancel(ctx context.Context, bookingID int64) (*models.Booking, bool, error) {
	const op = "booking.AdminCancel"

	b, err := r.bookings.Booking(ctx, bookingID)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return r.cancel(ctx, b)
}

func (r *Reconciler) cancel(ctx context.Context, b *models.Booking) (*models.Booking, bool, error) {
	const op = "booking.cancel"

	if b.PaymentStatus == models.PaymentCanceled {
		return b, true, nil
	}

	if err := r.events.ReleaseSeats(ctx, b.EventID, b.Section, b.Quantity); err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			// The event was deleted after the booking was made: cancel the
			// booking anyway, there is no inventory left to roll back.
			r.log.Warn("event missing during cancellation, skipping inventory rollback",
				slog.Int64("event_id", b.EventID),
				slog.Int64("booking_id", b.ID),
			)
		} else {
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := r.bookings.SetBookingStatus(ctx, b.ID, models.PaymentCanceled); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	updated := *b
	updated.PaymentStatus = models.PaymentCanceled
	return &updated, false, nil
}
