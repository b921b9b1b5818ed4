package payment

import (
	"encoding/json"
	"fmt"
)

// Event types delivered by the provider webhook
const (
	EventCheckoutCompleted = "checkout.session.completed"
)

// Event is the provider webhook envelope
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// BookingID extracts the booking reference from event metadata.
// Not every event type carries one.
func (e *Event) BookingID() string {
	return e.Data.Object.Metadata["booking_id"]
}

func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decode webhook event: %w", err)
	}
	if event.ID == "" {
		return nil, fmt.Errorf("webhook event missing id")
	}
	return &event, nil
}
