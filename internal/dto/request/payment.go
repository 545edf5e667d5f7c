package request

type CheckoutSessionRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}
