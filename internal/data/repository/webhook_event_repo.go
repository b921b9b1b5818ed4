package repository

import (
	"context"
	"errors"
	"fmt"

	"rink-booking/internal/data/entity"
	"rink-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type WebhookEventRepository interface {
	Record(ctx context.Context, event *entity.WebhookEvent) error
	FindByProviderEventID(ctx context.Context, providerEventID string) (*entity.WebhookEvent, error)
}

type webhookEventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWebhookEventRepository(db database.PgxIface, log *zap.Logger) WebhookEventRepository {
	return &webhookEventRepository{
		db:  db,
		log: log.With(zap.String("repository", "webhook_event")),
	}
}

// Record inserts the dedup row for a provider event. Returns
// ErrDuplicateEvent when the event id was seen before. Used for event
// types that carry no booking side effect; payment confirmations go
// through BookingRepository.ConfirmIfNotProcessed instead so the dedup
// write and the status transition share a transaction.
func (r *webhookEventRepository) Record(ctx context.Context, event *entity.WebhookEvent) error {
	query := `
		INSERT INTO webhook_events (id, provider_event_id, event_type, booking_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		event.ID,
		event.ProviderEventID,
		event.EventType,
		event.BookingID,
		event.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("record webhook event %s: %w", event.ProviderEventID, ErrDuplicateEvent)
		}

		r.log.Error("Failed to record webhook event",
			zap.Error(err),
			zap.String("provider_event_id", event.ProviderEventID),
		)
		return fmt.Errorf("record webhook event %s: %w", event.ProviderEventID, err)
	}

	return nil
}

func (r *webhookEventRepository) FindByProviderEventID(ctx context.Context, providerEventID string) (*entity.WebhookEvent, error) {
	query := `
		SELECT id, provider_event_id, event_type, booking_id, created_at
		FROM webhook_events
		WHERE provider_event_id = $1
	`

	var event entity.WebhookEvent
	err := r.db.QueryRow(ctx, query, providerEventID).Scan(
		&event.ID,
		&event.ProviderEventID,
		&event.EventType,
		&event.BookingID,
		&event.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find webhook event",
			zap.Error(err),
			zap.String("provider_event_id", providerEventID),
		)
		return nil, fmt.Errorf("find webhook event %s: %w", providerEventID, err)
	}

	return &event, nil
}
