package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rink-booking/internal/data/entity"
	"rink-booking/pkg/database"
	"rink-booking/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrSlotTaken is returned when the bookings_no_overlap exclusion
// constraint rejects an insert: a concurrent writer holds an
// overlapping interval on the same rink and date.
var ErrSlotTaken = errors.New("slot already taken")

// ErrDuplicateEvent is returned when a webhook event id was already recorded
var ErrDuplicateEvent = errors.New("webhook event already processed")

const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

type BookingRepository interface {
	InsertPending(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindActiveByRinkDate(ctx context.Context, rinkID uuid.UUID, date time.Time) ([]*entity.Booking, error)

	// Business queries
	UpdateStatusIf(ctx context.Context, bookingID uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus) (bool, error)
	SetPaymentRef(ctx context.Context, bookingID uuid.UUID, paymentRef string) error
	ConfirmIfNotProcessed(ctx context.Context, bookingID uuid.UUID, event *entity.WebhookEvent, paymentRef string) (bool, error)
	CancelStalePending(ctx context.Context, cutoff time.Time) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, order_id, user_id, rink_id, booking_date, start_min, end_min, hours,
	       subtotal_cents, fee_cents, total_cents, status, payment_intent_id, created_at, updated_at`

func scanBooking(row interface{ Scan(dest ...any) error }) (*entity.Booking, error) {
	var booking entity.Booking
	var startMin, endMin int32

	err := row.Scan(
		&booking.ID,
		&booking.OrderID,
		&booking.UserID,
		&booking.RinkID,
		&booking.BookingDate,
		&startMin,
		&endMin,
		&booking.Hours,
		&booking.SubtotalCents,
		&booking.FeeCents,
		&booking.TotalCents,
		&booking.Status,
		&booking.PaymentIntentID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.StartTime = timeslot.ClockTime(startMin)
	booking.EndTime = timeslot.ClockTime(endMin)
	return &booking, nil
}

// InsertPending writes a new pending booking. The database-level
// exclusion constraint is the final authority for invariant A; an
// application-level availability check may have passed and still lose
// the race here.
func (r *bookingRepository) InsertPending(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, order_id, user_id, rink_id, booking_date, start_min, end_min, hours,
		                      subtotal_cents, fee_cents, total_cents, status, payment_intent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.OrderID,
		booking.UserID,
		booking.RinkID,
		booking.BookingDate,
		int32(booking.StartTime),
		int32(booking.EndTime),
		booking.Hours,
		booking.SubtotalCents,
		booking.FeeCents,
		booking.TotalCents,
		entity.BookingStatusPending,
		booking.PaymentIntentID,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
			r.log.Warn("Booking insert lost the slot race",
				zap.String("order_id", booking.OrderID),
				zap.String("rink_id", booking.RinkID.String()),
				zap.String("constraint", pgErr.ConstraintName),
			)
			return fmt.Errorf("insert booking %s: %w", booking.OrderID, ErrSlotTaken)
		}

		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("insert booking %s: %w", booking.OrderID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

// FindActiveByRinkDate loads all non-cancelled bookings for a rink and
// calendar day; input for the advisory availability check.
func (r *bookingRepository) FindActiveByRinkDate(ctx context.Context, rinkID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE rink_id = $1 AND booking_date = $2 AND status <> $3
		ORDER BY start_min
	`

	rows, err := r.db.Query(ctx, query, rinkID, date, entity.BookingStatusCancelled)
	if err != nil {
		r.log.Error("Failed to find bookings by rink and date",
			zap.Error(err),
			zap.String("rink_id", rinkID.String()),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find bookings for rink %s: %w", rinkID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

// UpdateStatusIf applies a conditional status transition: the update
// only lands when the current status is one of the allowed
// predecessors. Returns false when the row was not in an allowed
// state (or does not exist), so stale events cannot resurrect a
// cancelled booking or confirm twice.
func (r *bookingRepository) UpdateStatusIf(ctx context.Context, bookingID uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus) (bool, error) {
	fromStates := make([]string, len(from))
	for i, s := range from {
		fromStates[i] = string(s)
	}

	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1 AND status = ANY($3)`

	result, err := r.db.Exec(ctx, query, bookingID, to, fromStates)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(to)),
		)
		return false, fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

// SetPaymentRef records the provider session reference on a booking
// that is still pending.
func (r *bookingRepository) SetPaymentRef(ctx context.Context, bookingID uuid.UUID, paymentRef string) error {
	query := `UPDATE bookings SET payment_intent_id = $2, updated_at = NOW() WHERE id = $1 AND status = $3`

	_, err := r.db.Exec(ctx, query, bookingID, paymentRef, entity.BookingStatusPending)
	if err != nil {
		r.log.Error("Failed to set payment reference",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("set payment ref on booking %s: %w", bookingID.String(), err)
	}

	return nil
}

// ConfirmIfNotProcessed records the webhook event and flips the booking
// pending -> confirmed in ONE transaction. Either both land or neither
// does, so an event can never be marked processed while the booking
// transition was lost. Returns ErrDuplicateEvent when the event id was
// already recorded; returns false (without error) when the booking is
// missing or not pending, in which case the dedup record still commits.
func (r *bookingRepository) ConfirmIfNotProcessed(ctx context.Context, bookingID uuid.UUID, event *entity.WebhookEvent, paymentRef string) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin confirm tx: %w", err)
	}
	defer tx.Rollback(ctx)

	insertEvent := `
		INSERT INTO webhook_events (id, provider_event_id, event_type, booking_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.Exec(ctx, insertEvent,
		event.ID,
		event.ProviderEventID,
		event.EventType,
		event.BookingID,
		event.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return false, fmt.Errorf("record webhook event %s: %w", event.ProviderEventID, ErrDuplicateEvent)
		}
		return false, fmt.Errorf("record webhook event %s: %w", event.ProviderEventID, err)
	}

	confirm := `
		UPDATE bookings
		SET status = $2, payment_intent_id = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`
	result, err := tx.Exec(ctx, confirm, bookingID, entity.BookingStatusConfirmed, paymentRef, entity.BookingStatusPending)
	if err != nil {
		return false, fmt.Errorf("confirm booking %s: %w", bookingID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit confirm tx: %w", err)
	}

	confirmed := result.RowsAffected() > 0
	if !confirmed {
		r.log.Warn("Webhook event recorded but booking not confirmable",
			zap.String("booking_id", bookingID.String()),
			zap.String("provider_event_id", event.ProviderEventID),
		)
	}

	return confirmed, nil
}

// CancelStalePending cancels pending bookings created before the
// cutoff, releasing their slots. Run by the housekeeping sweep.
func (r *bookingRepository) CancelStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND created_at < $3
	`

	result, err := r.db.Exec(ctx, query, entity.BookingStatusCancelled, entity.BookingStatusPending, cutoff)
	if err != nil {
		r.log.Error("Failed to cancel stale pending bookings", zap.Error(err))
		return 0, fmt.Errorf("cancel stale pending bookings: %w", err)
	}

	return result.RowsAffected(), nil
}
