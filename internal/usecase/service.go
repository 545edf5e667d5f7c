package usecase

import (
	"car-rental/internal/data/repository"
	"car-rental/internal/gateway"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Vehicle VehicleService
	Booking BookingService
	Payment PaymentService
	Audit   AuditService
}

func NewService(repo *repository.Repository, checkout gateway.CheckoutGateway, config *utils.Config, log *zap.Logger) *Service {
	audit := NewAuditService(repo, log)

	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Vehicle: NewVehicleService(repo, log),
		Booking: NewBookingService(repo, audit, log),
		Payment: NewPaymentService(repo, checkout, audit, config, log),
		Audit:   audit,
	}
}
