package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"
)

// Stripe caps webhook payloads well below this; anything larger is garbage.
const maxWebhookBodyBytes = 65536

type WebhookHandler struct {
	service usecase.PaymentService
	config  *utils.Config
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.PaymentService, config *utils.Config, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		config:  config,
		log:     log,
	}
}

// HandleStripeWebhook handles POST /api/payments/webhook.
//
// Delivery is at least once: after the signature verifies, the response is
// 200 even when the event is a duplicate or references nothing we know, so
// Stripe stops retrying. Only transient persistence failures return 5xx.
func (h *WebhookHandler) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	if h.config.Stripe.WebhookSecret == "" {
		h.log.Error("Stripe webhook secret is not configured")
		utils.ResponseInternalError(w, "Webhook not configured")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		h.log.Warn("Failed to read webhook body", zap.Error(err))
		utils.ResponseBadRequest(w, "Failed to read request body", nil)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.config.Stripe.WebhookSecret)
	if err != nil {
		h.log.Warn("Webhook signature verification failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid webhook signature", nil)
		return
	}

	if event.Type == "checkout.session.completed" {
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			// The signature already proved the sender; a payload we cannot
			// parse will not parse on redelivery either, so acknowledge it.
			h.log.Error("Failed to parse checkout session from event",
				zap.Error(err),
				zap.String("event_id", event.ID),
			)
		} else if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
			confirmation := usecase.CheckoutConfirmation{
				BookingID: session.Metadata["bookingId"],
				SessionID: session.ID,
			}
			if session.PaymentIntent != nil {
				confirmation.PaymentIntentID = session.PaymentIntent.ID
			}

			if err := h.service.ConfirmCheckout(r.Context(), confirmation); err != nil {
				h.log.Error("Failed to process checkout confirmation",
					zap.Error(err),
					zap.String("event_id", event.ID),
					zap.String("session_id", session.ID),
				)
				// 5xx so Stripe redelivers; ConfirmCheckout is idempotent.
				utils.ResponseInternalError(w, "Failed to process event")
				return
			}
		} else {
			// Async payment methods fire completed before the money moves.
			h.log.Info("Checkout completed but not yet paid, waiting for async payment",
				zap.String("event_id", event.ID),
				zap.String("session_id", session.ID),
			)
		}
	} else {
		h.log.Debug("Ignoring webhook event", zap.String("event_type", string(event.Type)))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"received": true})
}
