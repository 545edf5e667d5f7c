package response

import (
	"time"

	"car-rental/internal/data/entity"
)

type BookingResponse struct {
	ID                    string               `json:"id"`
	UserID                string               `json:"user_id"`
	VehicleID             string               `json:"vehicle_id"`
	Vehicle               *VehicleSummary      `json:"vehicle,omitempty"`
	StartDate             time.Time            `json:"start_date"`
	EndDate               time.Time            `json:"end_date"`
	Status                entity.BookingStatus `json:"status"`
	PricePerDaySnapshot   int64                `json:"price_per_day_snapshot"`
	TotalAmount           int64                `json:"total_amount"`
	StripeSessionID       string               `json:"stripe_session_id,omitempty"`
	StripePaymentIntentID string               `json:"stripe_payment_intent_id,omitempty"`
	CreatedAt             time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking, vehicle *entity.Vehicle) BookingResponse {
	return BookingResponse{
		ID:                    booking.ID.String(),
		UserID:                booking.UserID.String(),
		VehicleID:             booking.VehicleID.String(),
		Vehicle:               VehicleToSummary(vehicle),
		StartDate:             booking.StartDate,
		EndDate:               booking.EndDate,
		Status:                booking.Status,
		PricePerDaySnapshot:   booking.PricePerDaySnapshot,
		TotalAmount:           booking.TotalAmount,
		StripeSessionID:       booking.StripeSessionID,
		StripePaymentIntentID: booking.StripePaymentIntentID,
		CreatedAt:             booking.CreatedAt,
	}
}
