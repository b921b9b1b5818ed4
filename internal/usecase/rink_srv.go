package usecase

import (
	"context"
	"fmt"
	"time"

	"rink-booking/internal/data/repository"
	"rink-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RinkService interface {
	GetRinks(ctx context.Context) ([]*response.RinkResponse, error)
	GetAvailability(ctx context.Context, rinkID, date string) (*response.AvailabilityResponse, error)
}

type rinkService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRinkService(repo *repository.Repository, log *zap.Logger) RinkService {
	return &rinkService{
		repo: repo,
		log:  log.With(zap.String("service", "rink")),
	}
}

func (s *rinkService) GetRinks(ctx context.Context) ([]*response.RinkResponse, error) {
	rinks, err := s.repo.Rink.FindAllActive(ctx)
	if err != nil {
		s.log.Error("Failed to get rinks", zap.Error(err))
		return nil, fmt.Errorf("get rinks: %w", err)
	}

	rinkResponses := make([]*response.RinkResponse, len(rinks))
	for i, rink := range rinks {
		resp := response.RinkToResponse(rink)
		rinkResponses[i] = &resp
	}

	return rinkResponses, nil
}

// GetAvailability returns the booked (non-cancelled) intervals for a
// rink on one calendar day, so the UI can grey out taken slots.
func (s *rinkService) GetAvailability(ctx context.Context, rinkID, date string) (*response.AvailabilityResponse, error) {
	id, err := uuid.Parse(rinkID)
	if err != nil {
		return nil, fmt.Errorf("invalid rink ID format %s: %w", rinkID, err)
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %s: %w", date, err)
	}

	rink, err := s.repo.Rink.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load rink %s: %w", rinkID, err)
	}
	if rink == nil {
		return nil, fmt.Errorf("rink %s not found", rinkID)
	}

	bookings, err := s.repo.Booking.FindActiveByRinkDate(ctx, id, day)
	if err != nil {
		s.log.Error("Failed to get rink availability",
			zap.Error(err),
			zap.String("rink_id", rinkID),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("get availability for rink %s: %w", rinkID, err)
	}

	slots := make([]response.BookedSlotResponse, len(bookings))
	for i, b := range bookings {
		slots[i] = response.BookedSlotResponse{
			StartTime: b.StartTime.String(),
			EndTime:   b.EndTime.String(),
		}
	}

	return &response.AvailabilityResponse{
		RinkID:      rinkID,
		Date:        date,
		BookedSlots: slots,
	}, nil
}
