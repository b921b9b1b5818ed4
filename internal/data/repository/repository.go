package repository

import (
	"rink-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Rink         RinkRepository
	Booking      BookingRepository
	WebhookEvent WebhookEventRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Rink:         NewRinkRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		WebhookEvent: NewWebhookEventRepository(db, log),
	}
}
