package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	webhookHandler *adaptor.WebhookHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/payments/checkout-session - Start paying for a booking
		r.Post("/api/payments/checkout-session", paymentHandler.CreateCheckoutSession)
	})

	// ==================== PUBLIC ROUTES ====================
	// POST /api/payments/webhook - Stripe event delivery. Authenticated by
	// signature, never by session.
	r.Post("/api/payments/webhook", webhookHandler.HandleStripeWebhook)
}
