package wire

import (
	"net/http"

	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/internal/gateway"
	"car-rental/internal/usecase"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, checkout gateway.CheckoutGateway, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, checkout, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.RequestContext())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, logger)
	wireVehicle(r, handler.Vehicle, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wirePayment(r, handler.Payment, handler.Webhook, repo, logger)
	wireAudit(r, handler.Audit, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
