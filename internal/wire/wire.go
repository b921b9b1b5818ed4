// internal/wire/wire.go
package wire

import (
	"rink-booking/internal/adaptor"
	"rink-booking/internal/data/repository"
	"rink-booking/internal/usecase"
	"rink-booking/pkg/mailer"
	"rink-booking/pkg/middleware"
	"rink-booking/pkg/payment"
	"rink-booking/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, config *utils.Config, pay payment.Client, mail mailer.Sender, logger *zap.Logger) *App {
	// Initialize services dan handlers
	service := usecase.NewService(repo, config, pay, mail, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireBooking(r, handler.Booking, repo, config, logger)
	wireWebhook(r, handler.Webhook, repo, config, logger)
	wireRink(r, handler.Rink, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
