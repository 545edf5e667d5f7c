package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Reserve a vehicle for a date range
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings/me - Booking history of the caller
		r.Get("/api/bookings/me", bookingHandler.GetMyBookings)

		// GET /api/bookings/{id} - Booking details (owner or admin)
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// PUT /api/admin/bookings/{id}/cancel - Cancel a pending booking
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
