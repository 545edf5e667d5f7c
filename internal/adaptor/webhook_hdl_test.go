package adaptor

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test_secret"

type fakePaymentService struct {
	confirmations []usecase.CheckoutConfirmation
	confirmErr    error
}

func (f *fakePaymentService) CreateCheckoutSession(ctx context.Context, req *request.CheckoutSessionRequest, requesterID uuid.UUID, requesterRole string) (*response.CheckoutSessionResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePaymentService) ConfirmCheckout(ctx context.Context, confirmation usecase.CheckoutConfirmation) error {
	f.confirmations = append(f.confirmations, confirmation)
	return f.confirmErr
}

func newTestWebhookHandler(service usecase.PaymentService, secret string) *WebhookHandler {
	return NewWebhookHandler(service, &utils.Config{
		Stripe: utils.StripeConfig{WebhookSecret: secret},
	}, zap.NewNop())
}

// signPayload builds the Stripe-Signature header the way Stripe computes it:
// v1 = HMAC-SHA256(secret, "<timestamp>.<payload>").
func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func checkoutCompletedPayload(bookingID, paymentStatus string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"api_version": %q,
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_123",
				"object": "checkout.session",
				"payment_status": %q,
				"payment_intent": "pi_test_456",
				"metadata": {"bookingId": %q}
			}
		}
	}`, stripe.APIVersion, paymentStatus, bookingID))
}

func postWebhook(t *testing.T, handler *WebhookHandler, payload []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(payload))
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	rec := httptest.NewRecorder()
	handler.HandleStripeWebhook(rec, req)
	return rec
}

func TestHandleStripeWebhook_ValidSignatureConfirmsPayment(t *testing.T) {
	service := &fakePaymentService{}
	handler := newTestWebhookHandler(service, testWebhookSecret)

	bookingID := uuid.New().String()
	payload := checkoutCompletedPayload(bookingID, "paid")

	rec := postWebhook(t, handler, payload, signPayload(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received": true}`, rec.Body.String())

	require.Len(t, service.confirmations, 1)
	assert.Equal(t, bookingID, service.confirmations[0].BookingID)
	assert.Equal(t, "cs_test_123", service.confirmations[0].SessionID)
	assert.Equal(t, "pi_test_456", service.confirmations[0].PaymentIntentID)
}

func TestHandleStripeWebhook_InvalidSignatureIsRejected(t *testing.T) {
	service := &fakePaymentService{}
	handler := newTestWebhookHandler(service, testWebhookSecret)

	payload := checkoutCompletedPayload(uuid.New().String(), "paid")

	t.Run("missing header", func(t *testing.T) {
		rec := postWebhook(t, handler, payload, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		rec := postWebhook(t, handler, payload, signPayload(payload, "whsec_wrong", time.Now()))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("tampered payload", func(t *testing.T) {
		signature := signPayload(payload, testWebhookSecret, time.Now())
		tampered := bytes.Replace(payload, []byte("paid"), []byte("free"), 1)
		rec := postWebhook(t, handler, tampered, signature)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		rec := postWebhook(t, handler, payload, signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	// No state was touched by any of the rejected deliveries.
	assert.Empty(t, service.confirmations)
}

func TestHandleStripeWebhook_UnpaidSessionIsAcknowledgedWithoutConfirming(t *testing.T) {
	service := &fakePaymentService{}
	handler := newTestWebhookHandler(service, testWebhookSecret)

	payload := checkoutCompletedPayload(uuid.New().String(), "unpaid")

	rec := postWebhook(t, handler, payload, signPayload(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, service.confirmations)
}

func TestHandleStripeWebhook_UnparseablePayloadIsAcknowledged(t *testing.T) {
	service := &fakePaymentService{}
	handler := newTestWebhookHandler(service, testWebhookSecret)

	// Signed by the right sender, but data.object is not a checkout session.
	payload := []byte(fmt.Sprintf(`{
		"id": "evt_test_3",
		"api_version": %q,
		"type": "checkout.session.completed",
		"data": {"object": {"id": 12345}}
	}`, stripe.APIVersion))

	rec := postWebhook(t, handler, payload, signPayload(payload, testWebhookSecret, time.Now()))

	// Redelivery cannot make it parseable, so the event is consumed.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received": true}`, rec.Body.String())
	assert.Empty(t, service.confirmations)
}

func TestHandleStripeWebhook_IrrelevantEventIsAcknowledged(t *testing.T) {
	service := &fakePaymentService{}
	handler := newTestWebhookHandler(service, testWebhookSecret)

	payload := []byte(fmt.Sprintf(`{"id": "evt_test_2", "api_version": %q, "type": "payment_intent.created", "data": {"object": {}}}`, stripe.APIVersion))

	rec := postWebhook(t, handler, payload, signPayload(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, service.confirmations)
}

func TestHandleStripeWebhook_ConfirmFailureReturns500ForRedelivery(t *testing.T) {
	service := &fakePaymentService{confirmErr: errors.New("database unavailable")}
	handler := newTestWebhookHandler(service, testWebhookSecret)

	payload := checkoutCompletedPayload(uuid.New().String(), "paid")

	rec := postWebhook(t, handler, payload, signPayload(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleStripeWebhook_MissingSecretConfig(t *testing.T) {
	service := &fakePaymentService{}
	handler := newTestWebhookHandler(service, "")

	payload := checkoutCompletedPayload(uuid.New().String(), "paid")

	rec := postWebhook(t, handler, payload, signPayload(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, service.confirmations)
}
