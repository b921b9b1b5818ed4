package wire

import (
	"rink-booking/internal/adaptor"
	"rink-booking/internal/data/repository"
	"rink-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireRink configures public rink catalogue routes
func wireRink(
	r chi.Router,
	rinkHandler *adaptor.RinkHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/rinks", func(r chi.Router) {
		r.Get("/", rinkHandler.GetRinks)                     // GET /api/rinks
		r.Get("/{id}/availability", rinkHandler.GetAvailability) // GET /api/rinks/{rink-id}/availability?date=2026-01-15
	})
}
