package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rink-booking/internal/data/entity"
	"rink-booking/internal/data/repository"
	"rink-booking/internal/dto/request"
	"rink-booking/internal/dto/response"
	"rink-booking/pkg/payment"
	"rink-booking/pkg/timeslot"
	"rink-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutService interface {
	CreateCheckout(ctx context.Context, userID string, req *request.CreateCheckoutRequest) (*response.CheckoutResponse, error)
}

type checkoutService struct {
	repo   *repository.Repository
	config *utils.Config
	pay    payment.Client
	log    *zap.Logger
}

func NewCheckoutService(repo *repository.Repository, config *utils.Config, pay payment.Client, log *zap.Logger) CheckoutService {
	return &checkoutService{
		repo:   repo,
		config: config,
		pay:    pay,
		log:    log.With(zap.String("service", "checkout")),
	}
}

// CreateCheckout validates the request, re-checks availability, inserts
// a pending booking and opens a payment session for it. The advisory
// availability check only narrows the race window; the ledger's
// exclusion constraint is the final authority, and both rejection
// paths surface as the same ErrSlotUnavailable.
func (s *checkoutService) CreateCheckout(ctx context.Context, userID string, req *request.CreateCheckoutRequest) (*response.CheckoutResponse, error) {
	// Validate request shape
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create checkout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidBooking, utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	rinkID, err := uuid.Parse(req.RinkID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid rink id %s", ErrInvalidBooking, req.RinkID)
	}

	bookingDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %s", ErrInvalidBooking, req.Date)
	}

	startTime, err := timeslot.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time %s", ErrInvalidBooking, req.StartTime)
	}

	// Date must not be in the past (server clock, calendar-day granularity)
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if bookingDate.Before(today) {
		return nil, fmt.Errorf("%w: booking date %s is in the past", ErrInvalidBooking, req.Date)
	}

	if req.Hours > s.config.Booking.MaxHours {
		return nil, fmt.Errorf("%w: duration exceeds %d hours", ErrInvalidBooking, s.config.Booking.MaxHours)
	}

	// Rink must exist and be bookable
	rink, err := s.repo.Rink.FindByID(ctx, rinkID)
	if err != nil {
		return nil, fmt.Errorf("load rink %s: %w", req.RinkID, err)
	}
	if rink == nil || !rink.IsActive {
		return nil, fmt.Errorf("rink %s not found", req.RinkID)
	}

	// Compute end time; cross-midnight requests are rejected outright,
	// never checked against the wrong day
	endTime, _, spansMidnight := timeslot.ComputeEnd(bookingDate, startTime, req.Hours)
	if spansMidnight {
		return nil, fmt.Errorf("%w: booking from %s for %d hours would cross midnight", ErrInvalidBooking, req.StartTime, req.Hours)
	}

	subtotal, fee, total := PriceBooking(rink.HourlyRateCents, req.Hours)

	// Advisory availability check: fail fast before writing anything
	available, err := s.isSlotAvailable(ctx, rinkID, bookingDate, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if !available {
		s.log.Info("Checkout rejected by availability pre-check",
			zap.String("rink_id", req.RinkID),
			zap.String("date", req.Date),
			zap.String("start", startTime.String()),
		)
		return nil, fmt.Errorf("slot %s-%s on %s: %w", startTime, endTime, req.Date, ErrSlotUnavailable)
	}

	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:       utils.GenerateOrderID(),
		UserID:        userUUID,
		RinkID:        rinkID,
		BookingDate:   bookingDate,
		StartTime:     startTime,
		EndTime:       endTime,
		Hours:         req.Hours,
		SubtotalCents: subtotal,
		FeeCents:      fee,
		TotalCents:    total,
		Status:        entity.BookingStatusPending,
	}

	if err := s.repo.Booking.InsertPending(ctx, booking); err != nil {
		// A concurrent writer won the race after the pre-check; same
		// error as the pre-check so callers cannot tell the layers apart
		if errors.Is(err, repository.ErrSlotTaken) {
			s.log.Info("Checkout rejected by ledger constraint",
				zap.String("rink_id", req.RinkID),
				zap.String("date", req.Date),
				zap.String("order_id", booking.OrderID),
			)
			return nil, fmt.Errorf("slot %s-%s on %s: %w", startTime, endTime, req.Date, ErrSlotUnavailable)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	customerEmail := ""
	if user, err := s.repo.User.FindByID(ctx, userUUID); err == nil && user != nil {
		customerEmail = user.Email
	}

	session, err := s.pay.CreateSession(ctx, payment.SessionParams{
		AmountMinor:   booking.TotalCents, // already minor units, never truncated
		Currency:      s.config.Payment.Currency,
		Description:   fmt.Sprintf("%s %s %s-%s", rink.Name, req.Date, startTime, endTime),
		BookingID:     booking.ID.String(),
		OrderID:       booking.OrderID,
		CustomerEmail: customerEmail,
		SuccessURL:    localizedURL(s.config.Payment.SuccessURL, req.Locale),
		CancelURL:     localizedURL(s.config.Payment.CancelURL, req.Locale),
	})
	if err != nil {
		// The pending booking is NOT rolled back: it holds only its own
		// interval and the housekeeping sweep will release it
		s.log.Error("Payment session creation failed, booking left pending",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("order_id", booking.OrderID),
		)
		return nil, fmt.Errorf("create payment session for booking %s: %w", booking.ID.String(), ErrUpstream)
	}

	if err := s.repo.Booking.SetPaymentRef(ctx, booking.ID, session.ID); err != nil {
		// Best effort; the webhook carries the booking id in metadata anyway
		s.log.Warn("Failed to store payment session reference",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	s.log.Info("Checkout created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("user_id", userID),
		zap.String("rink_id", req.RinkID),
		zap.String("date", req.Date),
		zap.String("slot", fmt.Sprintf("%s-%s", startTime, endTime)),
		zap.Int64("total_cents", total),
	)

	return &response.CheckoutResponse{
		BookingID:          booking.ID.String(),
		OrderID:            booking.OrderID,
		PaymentRedirectURL: session.URL,
		Total:              float64(total) / 100,
	}, nil
}

// isSlotAvailable loads non-cancelled bookings for the rink/day and
// tests the candidate interval against each. True when no bookings
// exist for that rink/date.
func (s *checkoutService) isSlotAvailable(ctx context.Context, rinkID uuid.UUID, date time.Time, start, end timeslot.ClockTime) (bool, error) {
	existing, err := s.repo.Booking.FindActiveByRinkDate(ctx, rinkID, date)
	if err != nil {
		return false, err
	}

	for _, b := range existing {
		if timeslot.Overlaps(start, end, b.StartTime, b.EndTime) {
			return false, nil
		}
	}

	return true, nil
}

func localizedURL(base, locale string) string {
	if locale == "" || locale == "en" {
		return base
	}
	return base + "?locale=" + locale
}
