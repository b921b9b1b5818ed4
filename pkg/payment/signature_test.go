package payment

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "whsec_test_secret"

func TestVerifySignatureRoundTrip(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	header := Sign(payload, testSecret, time.Now())

	if err := VerifySignature(payload, header, testSecret, 5*time.Minute); err != nil {
		t.Fatalf("VerifySignature failed on freshly signed payload: %v", err)
	}
}

func TestVerifySignatureTamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := Sign(payload, testSecret, time.Now())

	tampered := []byte(`{"id":"evt_2"}`)
	err := VerifySignature(tampered, header, testSecret, 5*time.Minute)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := Sign(payload, testSecret, time.Now())

	err := VerifySignature(payload, header, "whsec_other", 5*time.Minute)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifySignatureStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := Sign(payload, testSecret, time.Now().Add(-time.Hour))

	err := VerifySignature(payload, header, testSecret, 5*time.Minute)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for stale timestamp, got %v", err)
	}
	if !strings.Contains(err.Error(), "tolerance") {
		t.Errorf("error should mention tolerance, got %q", err.Error())
	}
}

func TestVerifySignatureMalformedHeaders(t *testing.T) {
	payload := []byte(`{}`)

	for _, header := range []string{"", "garbage", "t=abc,v1=00", "v1=00", "t=123"} {
		if err := VerifySignature(payload, header, testSecret, 5*time.Minute); !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("header %q: expected ErrInvalidSignature, got %v", header, err)
		}
	}
}

func TestParseEvent(t *testing.T) {
	payload := []byte(`{
		"id": "evt_123",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_456", "metadata": {"booking_id": "b-789"}}}
	}`)

	event, err := ParseEvent(payload)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if event.ID != "evt_123" {
		t.Errorf("event.ID = %q", event.ID)
	}
	if event.Type != EventCheckoutCompleted {
		t.Errorf("event.Type = %q", event.Type)
	}
	if event.BookingID() != "b-789" {
		t.Errorf("BookingID() = %q", event.BookingID())
	}

	if _, err := ParseEvent([]byte(`{"type":"x"}`)); err == nil {
		t.Error("expected error for event without id")
	}
	if _, err := ParseEvent([]byte(`not-json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
