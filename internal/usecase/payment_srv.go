package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/internal/gateway"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutConfirmation is a verified "checkout completed, paid" webhook
// event reduced to the fields the reconciler needs. Delivery is at least
// once; ConfirmCheckout must tolerate duplicates.
type CheckoutConfirmation struct {
	BookingID       string
	SessionID       string
	PaymentIntentID string
}

type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, req *request.CheckoutSessionRequest, requesterID uuid.UUID, requesterRole string) (*response.CheckoutSessionResponse, error)

	// ConfirmCheckout idempotently transitions the referenced booking to
	// paid. A nil return means the event is consumed; the webhook is
	// acknowledged even when no booking was touched.
	ConfirmCheckout(ctx context.Context, confirmation CheckoutConfirmation) error
}

type paymentService struct {
	repo     *repository.Repository
	checkout gateway.CheckoutGateway
	audit    AuditService
	config   *utils.Config
	log      *zap.Logger
}

func NewPaymentService(
	repo *repository.Repository,
	checkout gateway.CheckoutGateway,
	audit AuditService,
	config *utils.Config,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		repo:     repo,
		checkout: checkout,
		audit:    audit,
		config:   config,
		log:      log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreateCheckoutSession(ctx context.Context, req *request.CheckoutSessionRequest, requesterID uuid.UUID, requesterRole string) (*response.CheckoutSessionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout session validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s: %w", utils.FormatValidationErrors(errs), ErrInvalidInput)
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, ErrInvalidInput)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to load booking", zap.Error(err), zap.String("booking_id", req.BookingID))
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found: %w", req.BookingID, ErrNotFound)
	}

	if booking.UserID != requesterID && requesterRole != string(entity.RoleAdmin) {
		return nil, fmt.Errorf("not allowed to pay for booking %s: %w", req.BookingID, ErrForbidden)
	}

	if booking.Status != entity.BookingStatusPendingPayment {
		return nil, fmt.Errorf("booking status is %s, not pending payment: %w", booking.Status, ErrInvalidState)
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, booking.VehicleID)
	if err != nil || vehicle == nil {
		s.log.Error("Failed to load booking vehicle",
			zap.Error(err),
			zap.String("vehicle_id", booking.VehicleID.String()),
		)
		return nil, fmt.Errorf("load booking vehicle: %w", ErrNotFound)
	}

	// Whole currency units to minor units. Integer arithmetic only.
	amountMinorUnits := booking.TotalAmount * 100

	session, err := s.checkout.CreateSession(ctx, &gateway.CheckoutParams{
		AmountMinorUnits: amountMinorUnits,
		Currency:         s.config.Stripe.Currency,
		ProductName:      fmt.Sprintf("Car booking: %s %s", vehicle.Brand, vehicle.Model),
		Description:      fmt.Sprintf("Booking %s", booking.ID.String()),
		SuccessURL:       fmt.Sprintf("%s/payment-success?bookingId=%s", s.config.App.BaseURL, booking.ID.String()),
		CancelURL:        fmt.Sprintf("%s/payment-cancelled?bookingId=%s", s.config.App.BaseURL, booking.ID.String()),
		// The webhook uses this to find the booking again.
		Metadata: map[string]string{
			"bookingId": booking.ID.String(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	booking.StripeSessionID = session.ID
	booking.UpdatedAt = time.Now()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.log.Error("Failed to store checkout session reference",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("session_id", session.ID),
		)
		return nil, fmt.Errorf("store session reference: %w", err)
	}

	s.log.Info("Checkout session created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("session_id", session.ID),
		zap.Int64("amount_minor_units", amountMinorUnits),
	)

	return &response.CheckoutSessionResponse{
		CheckoutURL: session.URL,
		SessionID:   session.ID,
	}, nil
}

func (s *paymentService) ConfirmCheckout(ctx context.Context, confirmation CheckoutConfirmation) error {
	if confirmation.BookingID == "" {
		// Nothing to correlate against; consume the event.
		s.log.Warn("Checkout confirmation without booking metadata",
			zap.String("session_id", confirmation.SessionID))
		return nil
	}

	bookingID, err := uuid.Parse(confirmation.BookingID)
	if err != nil {
		s.log.Warn("Checkout confirmation with malformed booking ID",
			zap.String("booking_id", confirmation.BookingID))
		return nil
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to load booking for confirmation",
			zap.Error(err),
			zap.String("booking_id", confirmation.BookingID),
		)
		return fmt.Errorf("load booking %s: %w", confirmation.BookingID, err)
	}
	if booking == nil {
		// The processor will not retry usefully on an unknown booking.
		s.log.Warn("Checkout confirmation for unknown booking",
			zap.String("booking_id", confirmation.BookingID))
		return nil
	}

	// Idempotency: repeat delivery of the same event is a no-op, with no
	// duplicate audit entry.
	if booking.Status == entity.BookingStatusPaid {
		s.log.Info("Booking already paid, ignoring duplicate confirmation",
			zap.String("booking_id", booking.ID.String()))
		return nil
	}

	// paid is only reachable from pending_payment.
	if booking.Status == entity.BookingStatusCancelled {
		s.log.Warn("Checkout confirmation for cancelled booking, ignoring",
			zap.String("booking_id", booking.ID.String()))
		return nil
	}

	booking.Status = entity.BookingStatusPaid
	if confirmation.SessionID != "" {
		booking.StripeSessionID = confirmation.SessionID
	}
	if confirmation.PaymentIntentID != "" {
		booking.StripePaymentIntentID = confirmation.PaymentIntentID
	}
	booking.UpdatedAt = time.Now()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.log.Error("Failed to mark booking paid",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("mark booking %s paid: %w", booking.ID.String(), err)
	}

	s.audit.Record(ctx, AuditEntry{
		Action:     entity.AuditPaymentSucceeded,
		EntityType: "Booking",
		EntityID:   booking.ID.String(),
		Message:    "Stripe webhook marked booking as paid",
		Metadata: map[string]any{
			"stripeSessionId":       confirmation.SessionID,
			"stripePaymentIntentId": confirmation.PaymentIntentID,
		},
	})

	s.log.Info("Booking marked paid",
		zap.String("booking_id", booking.ID.String()),
		zap.String("session_id", confirmation.SessionID),
		zap.String("payment_intent_id", confirmation.PaymentIntentID),
	)

	return nil
}
