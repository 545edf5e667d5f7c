package adaptor

import (
	"errors"
	"net/http"

	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Vehicle *VehicleHandler
	Booking *BookingHandler
	Payment *PaymentHandler
	Webhook *WebhookHandler
	Audit   *AuditHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Vehicle: NewVehicleHandler(service.Vehicle, log),
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Payment, log),
		Webhook: NewWebhookHandler(service.Payment, config, log),
		Audit:   NewAuditHandler(service.Audit, log),
	}
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, usecase.ErrInvalidState):
		log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
