package storage

import "errors"

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrSectionNotFound   = errors.New("seat section not found")
	ErrInsufficientSeats = errors.New("not enough seats available")

	// ErrDuplicateBooking is returned when an insert hits the unique
	// constraint on payment_intent_id. The constraint is the source of
	// truth for idempotency: callers re-read and return the existing row.
	ErrDuplicateBooking = errors.New("booking already exists for payment intent")
)
