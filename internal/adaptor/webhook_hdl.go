package adaptor

import (
	"errors"
	"io"
	"net/http"

	"rink-booking/internal/usecase"
	"rink-booking/pkg/payment"
	"rink-booking/pkg/utils"

	"go.uber.org/zap"
)

// webhook payloads are small; cap the body read defensively
const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	service usecase.WebhookService
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.WebhookService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log.With(zap.String("handler", "webhook")),
	}
}

// HandleEvent handles POST /api/webhooks/payment (no user session;
// authenticated solely by the signature header). Duplicates and
// unrecognized events are acked with 200 so the provider stops
// retrying; only signature failures get a 400.
func (h *WebhookHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		h.log.Warn("Failed to read webhook body", zap.Error(err))
		utils.ResponseBadRequest(w, "Unable to read request body", nil)
		return
	}

	ack, err := h.service.HandleEvent(r.Context(), payload, r.Header.Get(payment.SignatureHeader))
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			utils.ResponseBadRequest(w, "Invalid signature", nil)
			return
		}

		h.log.Error("Webhook processing failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", ack)
}
