package entity

import (
	"github.com/google/uuid"
)

// WebhookEvent is the dedup record for processed provider events,
// keyed by the provider's unique event id. Written before (or
// transactionally with) any side effect of the event.
type WebhookEvent struct {
	BaseSimple
	ProviderEventID string     `db:"provider_event_id"`
	EventType       string     `db:"event_type"`
	BookingID       *uuid.UUID `db:"booking_id"`
}
