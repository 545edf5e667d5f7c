package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPendingPayment BookingStatus = "pending_payment"
	BookingStatusPaid           BookingStatus = "paid"
	BookingStatusCancelled      BookingStatus = "cancelled"
)

// Booking reserves a vehicle for the half-open interval [StartDate, EndDate).
// PricePerDaySnapshot is captured at creation and never updated, so later
// catalog price changes cannot alter what the customer owes.
type Booking struct {
	Base
	UserID                uuid.UUID     `db:"user_id"`
	VehicleID             uuid.UUID     `db:"vehicle_id"`
	StartDate             time.Time     `db:"start_date"`
	EndDate               time.Time     `db:"end_date"`
	Status                BookingStatus `db:"status"`
	PricePerDaySnapshot   int64         `db:"price_per_day_snapshot"`
	TotalAmount           int64         `db:"total_amount"`
	StripeSessionID       string        `db:"stripe_session_id"`
	StripePaymentIntentID string        `db:"stripe_payment_intent_id"`
}
