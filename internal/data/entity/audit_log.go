package entity

import (
	"github.com/google/uuid"
)

// AuditLog is an append-only record of a security or business relevant
// event. Rows are never updated or deleted.
type AuditLog struct {
	BaseSimple
	ActorUser  *uuid.UUID     `db:"actor_user"`
	ActorRole  string         `db:"actor_role"`
	Action     string         `db:"action"`
	EntityType *string        `db:"entity_type"`
	EntityID   *string        `db:"entity_id"`
	Message    string         `db:"message"`
	Metadata   map[string]any `db:"metadata"`
	IP         string         `db:"ip"`
	UserAgent  string         `db:"user_agent"`
	RequestID  string         `db:"request_id"`
}

// Audit action tags.
const (
	AuditBookingCreated        = "BOOKING_CREATED"
	AuditBookingOverlapBlocked = "BOOKING_OVERLAP_BLOCKED"
	AuditBookingCancelled      = "BOOKING_CANCELLED"
	AuditPaymentSucceeded      = "PAYMENT_SUCCEEDED"
)
