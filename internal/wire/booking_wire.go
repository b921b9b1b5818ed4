package wire

import (
	"rink-booking/internal/adaptor"
	"rink-booking/internal/data/repository"
	"rink-booking/pkg/middleware"
	"rink-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireBooking configures checkout and booking routes
func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED USER ROUTES ====================
	r.With(middleware.AuthSession(repo.Session, log)).Route("/api", func(r chi.Router) {
		r.Post("/checkout", bookingHandler.CreateCheckout)              // POST /api/checkout
		r.Get("/user/bookings", bookingHandler.GetUserBookings)         // GET /api/user/bookings?page=1&per_page=10
		r.Put("/bookings/{id}/cancel", bookingHandler.CancelBooking)    // PUT /api/bookings/{booking-id}/cancel
	})

	// ==================== ADMIN ROUTES ====================
	r.With(
		middleware.AuthSession(repo.Session, log), // Check valid session
		middleware.Admin(repo.User, log),          // Check admin role
	).Get("/api/admin/bookings/{id}", bookingHandler.GetBookingByID)
}
