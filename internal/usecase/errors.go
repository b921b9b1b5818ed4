package usecase

import "errors"

// Sentinel errors mapped to machine-readable codes at the handler layer.
var (
	// ErrInvalidBooking marks user-correctable validation failures
	// (bad payload shape, past date, midnight-spanning range).
	ErrInvalidBooking = errors.New("invalid booking request")

	// ErrSlotUnavailable covers both the advisory availability check
	// and the ledger exclusion constraint; callers cannot distinguish
	// early from late conflict detection.
	ErrSlotUnavailable = errors.New("slot is no longer available")

	// ErrUpstream marks payment-provider failures; the whole checkout
	// is safe to retry.
	ErrUpstream = errors.New("payment provider unavailable")
)
