package adaptor

import (
	"encoding/json"
	"net/http"

	"car-rental/internal/dto/request"
	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

// CreateCheckoutSession handles POST /api/payments/checkout-session
func (h *PaymentHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	requesterRole, _ := utils.GetRoleFromContext(r.Context())

	var req request.CheckoutSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.CreateCheckoutSession(r.Context(), &req, requesterID, requesterRole)
	if err != nil {
		handleServiceError(w, h.log, err, "create checkout session")
		return
	}

	utils.ResponseCreated(w, "Checkout session created", response)
}
