package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rink-booking/internal/data/entity"
	"rink-booking/internal/data/repository"
	"rink-booking/internal/dto/response"
	"rink-booking/pkg/mailer"
	"rink-booking/pkg/payment"
	"rink-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WebhookService interface {
	HandleEvent(ctx context.Context, payload []byte, signatureHeader string) (*response.WebhookAck, error)
}

type webhookService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   mailer.Sender
	log    *zap.Logger
}

func NewWebhookService(repo *repository.Repository, config *utils.Config, mail mailer.Sender, log *zap.Logger) WebhookService {
	return &webhookService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log.With(zap.String("service", "webhook")),
	}
}

// HandleEvent reconciles one provider webhook delivery onto the
// booking ledger. Signature verification happens before any parsing of
// business content; the event id is the idempotency key. Booking-side
// inconsistencies are acked (not errored) so the provider does not
// enter a retry storm; only signature failures reject the delivery.
func (s *webhookService) HandleEvent(ctx context.Context, payload []byte, signatureHeader string) (*response.WebhookAck, error) {
	if err := payment.VerifySignature(payload, signatureHeader, s.config.Payment.WebhookSecret, s.config.Payment.SignatureTolerance); err != nil {
		// Potential security event; nothing was recorded, provider retries are safe
		s.log.Warn("Webhook signature verification failed", zap.Error(err))
		return nil, err
	}

	event, err := payment.ParseEvent(payload)
	if err != nil {
		s.log.Warn("Webhook payload unparseable after valid signature", zap.Error(err))
		return nil, fmt.Errorf("parse webhook event: %w", err)
	}

	record := &entity.WebhookEvent{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ProviderEventID: event.ID,
		EventType:       event.Type,
	}

	if event.Type != payment.EventCheckoutCompleted {
		// Still record the id so replays of any event type short-circuit
		if err := s.repo.WebhookEvent.Record(ctx, record); err != nil {
			if errors.Is(err, repository.ErrDuplicateEvent) {
				return &response.WebhookAck{Received: true, Duplicate: true}, nil
			}
			return nil, err
		}
		s.log.Debug("Ignored webhook event type",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
		)
		return &response.WebhookAck{Received: true}, nil
	}

	bookingIDStr := event.BookingID()
	if bookingIDStr == "" {
		// Not every completed session carries a booking reference
		if err := s.repo.WebhookEvent.Record(ctx, record); err != nil {
			if errors.Is(err, repository.ErrDuplicateEvent) {
				return &response.WebhookAck{Received: true, Duplicate: true}, nil
			}
			return nil, err
		}
		s.log.Info("Payment event without booking metadata acked",
			zap.String("event_id", event.ID),
		)
		return &response.WebhookAck{Received: true}, nil
	}

	bookingID, err := uuid.Parse(bookingIDStr)
	if err != nil {
		if err := s.repo.WebhookEvent.Record(ctx, record); err != nil {
			if errors.Is(err, repository.ErrDuplicateEvent) {
				return &response.WebhookAck{Received: true, Duplicate: true}, nil
			}
			return nil, err
		}
		s.log.Warn("Payment event carried malformed booking id",
			zap.String("event_id", event.ID),
			zap.String("booking_id", bookingIDStr),
		)
		return &response.WebhookAck{Received: true}, nil
	}

	record.BookingID = &bookingID

	// Dedup write and pending->confirmed transition share one
	// transaction; a duplicate delivery cannot confirm twice and a
	// recorded event cannot lose its transition
	confirmed, err := s.repo.Booking.ConfirmIfNotProcessed(ctx, bookingID, record, event.Data.Object.ID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEvent) {
			s.log.Info("Duplicate webhook event acked",
				zap.String("event_id", event.ID),
				zap.String("booking_id", bookingIDStr),
			)
			return &response.WebhookAck{Received: true, Duplicate: true}, nil
		}
		return nil, fmt.Errorf("confirm booking %s: %w", bookingIDStr, err)
	}

	if !confirmed {
		// Booking missing or not pending; logged, still acked
		s.log.Warn("Payment confirmed for booking not in pending state",
			zap.String("event_id", event.ID),
			zap.String("booking_id", bookingIDStr),
		)
		return &response.WebhookAck{Received: true}, nil
	}

	s.log.Info("Booking confirmed by payment webhook",
		zap.String("event_id", event.ID),
		zap.String("booking_id", bookingIDStr),
	)

	s.notifyOwner(ctx, bookingID)

	return &response.WebhookAck{Received: true}, nil
}

// notifyOwner sends the confirmation email. Best effort: failures are
// logged and never affect the webhook response.
func (s *webhookService) notifyOwner(ctx context.Context, bookingID uuid.UUID) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil || booking == nil {
		s.log.Warn("Skipping confirmation email, booking not loadable",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return
	}

	user, err := s.repo.User.FindByID(ctx, booking.UserID)
	if err != nil || user == nil || user.Email == "" {
		s.log.Warn("Skipping confirmation email, owner not loadable",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return
	}

	rinkName := "the rink"
	if rink, err := s.repo.Rink.FindByID(ctx, booking.RinkID); err == nil && rink != nil {
		rinkName = rink.Name
	}

	subject := fmt.Sprintf("Booking %s confirmed", booking.OrderID)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour ice time at %s on %s from %s to %s is confirmed.\nTotal paid: %.2f\n\nSee you on the ice!",
		user.Username,
		rinkName,
		booking.BookingDate.Format("2006-01-02"),
		booking.StartTime,
		booking.EndTime,
		float64(booking.TotalCents)/100,
	)

	if err := s.mail.Send(ctx, user.Email, subject, body); err != nil {
		s.log.Warn("Confirmation email failed",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
	}
}
