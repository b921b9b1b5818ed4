package adaptor

import (
	"net/http"
	"strings"

	"rink-booking/internal/usecase"
	"rink-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RinkHandler struct {
	service usecase.RinkService
	log     *zap.Logger
}

func NewRinkHandler(service usecase.RinkService, log *zap.Logger) *RinkHandler {
	return &RinkHandler{
		service: service,
		log:     log.With(zap.String("handler", "rink")),
	}
}

// GetRinks handles GET /api/rinks (public)
func (h *RinkHandler) GetRinks(w http.ResponseWriter, r *http.Request) {
	rinks, err := h.service.GetRinks(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get rinks")
		return
	}

	utils.ResponseSuccess(w, "success", rinks)
}

// GetAvailability handles GET /api/rinks/{id}/availability?date=YYYY-MM-DD (public)
func (h *RinkHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	rinkID := chi.URLParam(r, "id")
	if rinkID == "" {
		utils.ResponseBadRequest(w, "Rink ID is required", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}

	availability, err := h.service.GetAvailability(r.Context(), rinkID, date)
	if err != nil {
		h.handleServiceError(w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

func (h *RinkHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
