package wire

import (
	"rink-booking/internal/adaptor"
	"rink-booking/internal/data/repository"
	"rink-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireWebhook configures the payment provider callback route.
// No session middleware here: the provider authenticates with the
// signature header, not a user session.
func wireWebhook(
	r chi.Router,
	webhookHandler *adaptor.WebhookHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Post("/api/webhooks/payment", webhookHandler.HandleEvent)
}
