package usecase

import (
	"rink-booking/internal/data/repository"
	"rink-booking/pkg/mailer"
	"rink-booking/pkg/payment"
	"rink-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Checkout     CheckoutService
	Webhook      WebhookService
	Booking      BookingService
	Rink         RinkService
	Housekeeping HousekeepingService
}

func NewService(repo *repository.Repository, config *utils.Config, pay payment.Client, mail mailer.Sender, log *zap.Logger) *Service {
	return &Service{
		Checkout:     NewCheckoutService(repo, config, pay, log),
		Webhook:      NewWebhookService(repo, config, mail, log),
		Booking:      NewBookingService(repo, log),
		Rink:         NewRinkService(repo, log),
		Housekeeping: NewHousekeepingService(repo, config, log),
	}
}
