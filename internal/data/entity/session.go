package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is an issued bearer credential. The token is an opaque uuid the
// client sends back as `Authorization: Bearer <token>`; a session is valid
// until it expires or RevokedAt is set by logout. UserAgent and IPAddress
// record where the session was issued from.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
