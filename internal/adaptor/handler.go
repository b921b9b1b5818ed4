package adaptor

import (
	"rink-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	Webhook *WebhookHandler
	Rink    *RinkHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Checkout, service.Booking, log),
		Webhook: NewWebhookHandler(service.Webhook, log),
		Rink:    NewRinkHandler(service.Rink, log),
	}
}
