package usecase

import (
	"context"
	"fmt"

	"rink-booking/internal/data/entity"
	"rink-booking/internal/data/repository"
	"rink-booking/internal/dto/request"
	"rink-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public endpoints (butuh auth)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	CancelBooking(ctx context.Context, userID, bookingID string) error

	// Admin endpoints
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		rinkName := ""
		if rink, _ := s.repo.Rink.FindByID(ctx, booking.RinkID); rink != nil {
			rinkName = rink.Name
		}
		bookingResponses[i] = response.BookingToResponse(booking, rinkName)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

// CancelBooking releases the slot: the ledger's exclusion constraint
// ignores cancelled rows, so the same interval becomes bookable again.
func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s not found", bookingID)
	}

	if booking.UserID != userUUID {
		return fmt.Errorf("unauthorized to cancel this booking")
	}

	if !booking.CanTransitionTo(entity.BookingStatusCancelled) {
		return fmt.Errorf("booking status is %s, cannot cancel", booking.Status)
	}

	// Conditional update; a concurrent webhook confirm cannot be
	// overwritten blindly and a cancelled row stays cancelled
	applied, err := s.repo.Booking.UpdateStatusIf(ctx, booking.ID,
		[]entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusConfirmed},
		entity.BookingStatusCancelled,
	)
	if err != nil {
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}
	if !applied {
		return fmt.Errorf("booking status is %s, cannot cancel", booking.Status)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID),
		zap.String("user_id", userID),
	)

	return nil
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	rinkName := ""
	if rink, _ := s.repo.Rink.FindByID(ctx, booking.RinkID); rink != nil {
		rinkName = rink.Name
	}

	resp := response.BookingToResponse(booking, rinkName)
	return &resp, nil
}
