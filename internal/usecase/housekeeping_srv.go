package usecase

import (
	"context"
	"time"

	"rink-booking/internal/data/repository"
	"rink-booking/pkg/utils"

	"go.uber.org/zap"
)

// HousekeepingService releases slots held by checkouts that never
// completed: pending bookings older than the configured TTL are
// cancelled so the exclusion constraint stops counting them.
type HousekeepingService interface {
	ReleaseStalePending(ctx context.Context)
	CleanSessions(ctx context.Context)
}

type housekeepingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewHousekeepingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) HousekeepingService {
	return &housekeepingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "housekeeping")),
	}
}

func (s *housekeepingService) ReleaseStalePending(ctx context.Context) {
	cutoff := time.Now().Add(-s.config.Booking.PendingTTL)

	released, err := s.repo.Booking.CancelStalePending(ctx, cutoff)
	if err != nil {
		s.log.Error("Stale pending sweep failed", zap.Error(err))
		return
	}

	if released > 0 {
		s.log.Info("Released stale pending bookings",
			zap.Int64("count", released),
			zap.Time("cutoff", cutoff),
		)
	}
}

func (s *housekeepingService) CleanSessions(ctx context.Context) {
	removed, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		s.log.Error("Session cleanup failed", zap.Error(err))
		return
	}

	if removed > 0 {
		s.log.Info("Removed expired sessions", zap.Int64("count", removed))
	}
}
