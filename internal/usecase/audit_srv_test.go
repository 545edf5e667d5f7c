package usecase

import (
	"context"
	"errors"
	"testing"

	"car-rental/internal/data/entity"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuditRecord_CapturesActorAndRequestMeta(t *testing.T) {
	audits := &fakeAuditLogRepo{}
	svc := NewAuditService(newTestRepository(nil, nil, audits), zap.NewNop())

	userID := uuid.New()
	ctx := utils.SetUserContext(context.Background(), userID, string(entity.RoleAdmin))
	ctx = utils.SetRequestMeta(ctx, utils.RequestMeta{
		RequestID: "req-1",
		ClientIP:  "203.0.113.9",
		UserAgent: "curl/8.0",
	})

	svc.Record(ctx, AuditEntry{
		Action:     entity.AuditBookingCancelled,
		EntityType: "Booking",
		EntityID:   "b-1",
		Message:    "Booking cancelled by admin",
	})

	require.Len(t, audits.entries, 1)
	entry := audits.entries[0]
	require.NotNil(t, entry.ActorUser)
	assert.Equal(t, userID, *entry.ActorUser)
	assert.Equal(t, string(entity.RoleAdmin), entry.ActorRole)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "203.0.113.9", entry.IP)
	assert.Equal(t, "curl/8.0", entry.UserAgent)
	require.NotNil(t, entry.EntityType)
	assert.Equal(t, "Booking", *entry.EntityType)
}

func TestAuditRecord_AnonymousActor(t *testing.T) {
	audits := &fakeAuditLogRepo{}
	svc := NewAuditService(newTestRepository(nil, nil, audits), zap.NewNop())

	svc.Record(context.Background(), AuditEntry{
		Action:  entity.AuditPaymentSucceeded,
		Message: "Stripe webhook marked booking as paid",
	})

	require.Len(t, audits.entries, 1)
	assert.Equal(t, "anonymous", audits.entries[0].ActorRole)
	assert.Nil(t, audits.entries[0].ActorUser)
	assert.Nil(t, audits.entries[0].EntityType)
}

func TestAuditRecord_StoreFailureIsSwallowed(t *testing.T) {
	audits := &fakeAuditLogRepo{
		CreateFn: func(ctx context.Context, log *entity.AuditLog) error {
			return errors.New("disk full")
		},
	}
	svc := NewAuditService(newTestRepository(nil, nil, audits), zap.NewNop())

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), AuditEntry{
			Action:  entity.AuditBookingCreated,
			Message: "Booking created (pending payment)",
		})
	})
}

func TestAuditRecord_SurvivesCancelledRequestContext(t *testing.T) {
	audits := &fakeAuditLogRepo{
		CreateFn: func(ctx context.Context, log *entity.AuditLog) error {
			return ctx.Err()
		},
	}
	svc := NewAuditService(newTestRepository(nil, nil, audits), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.Record(ctx, AuditEntry{
		Action:  entity.AuditBookingCreated,
		Message: "Booking created (pending payment)",
	})

	// The write runs on a detached context, so an abandoned request still
	// leaves a trail.
	assert.Len(t, audits.entries, 1)
}
