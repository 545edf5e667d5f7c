package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVehicle(
	r chi.Router,
	vehicleHandler *adaptor.VehicleHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/cars - Browse the catalog (active vehicles only)
	r.Get("/api/cars", vehicleHandler.ListVehicles)

	// GET /api/cars/{id} - Vehicle details
	r.Get("/api/cars/{id}", vehicleHandler.GetVehicleByID)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// POST /api/cars - Add a vehicle to the catalog
		r.Post("/api/cars", vehicleHandler.CreateVehicle)

		// PUT /api/cars/{id} - Edit a vehicle
		r.Put("/api/cars/{id}", vehicleHandler.UpdateVehicle)

		// DELETE /api/cars/{id} - Pull a vehicle from the catalog
		r.Delete("/api/cars/{id}", vehicleHandler.DeactivateVehicle)
	})
}
