package entity

import (
	"time"

	"rink-booking/pkg/timeslot"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents one reserved ice-time interval on a rink.
// Amounts are integer cents. [StartTime, EndTime) is half-open and
// never crosses midnight.
type Booking struct {
	BaseNoDelete
	OrderID         string             `db:"order_id"`
	UserID          uuid.UUID          `db:"user_id"`
	RinkID          uuid.UUID          `db:"rink_id"`
	BookingDate     time.Time          `db:"booking_date"`
	StartTime       timeslot.ClockTime `db:"start_min"`
	EndTime         timeslot.ClockTime `db:"end_min"`
	Hours           int                `db:"hours"`
	SubtotalCents   int64              `db:"subtotal_cents"`
	FeeCents        int64              `db:"fee_cents"`
	TotalCents      int64              `db:"total_cents"`
	Status          BookingStatus      `db:"status"`
	PaymentIntentID *string            `db:"payment_intent_id"`
}

// CanTransitionTo enforces the status state machine:
// pending -> confirmed | cancelled, confirmed -> cancelled.
// confirmed and cancelled are otherwise terminal.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	switch target {
	case BookingStatusConfirmed:
		return b.Status == BookingStatusPending
	case BookingStatusCancelled:
		return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
	default:
		return false
	}
}
