package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"car-rental/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Integration tests for the overlap predicate. They need a real Postgres
// because the half-open interval comparison lives in SQL; run with
// TEST_DATABASE_URL=postgres://... go test ./internal/data/repository/
func newTestBookingRepo(t *testing.T) BookingRepository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("integration test - set TEST_DATABASE_URL to run")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS bookings (
			id uuid PRIMARY KEY,
			user_id uuid NOT NULL,
			vehicle_id uuid NOT NULL,
			start_date timestamptz NOT NULL,
			end_date timestamptz NOT NULL,
			status text NOT NULL,
			price_per_day_snapshot bigint NOT NULL,
			total_amount bigint NOT NULL,
			stripe_session_id text NOT NULL DEFAULT '',
			stripe_payment_intent_id text NOT NULL DEFAULT '',
			created_at timestamptz NOT NULL,
			updated_at timestamptz NOT NULL
		)
	`)
	require.NoError(t, err)

	return NewBookingRepository(pool, zap.NewNop())
}

func seedBooking(t *testing.T, repo BookingRepository, vehicleID uuid.UUID, start, end time.Time) *entity.Booking {
	t.Helper()

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:              uuid.New(),
		VehicleID:           vehicleID,
		StartDate:           start,
		EndDate:             end,
		Status:              entity.BookingStatusPendingPayment,
		PricePerDaySnapshot: 50,
		TotalAmount:         100,
	}
	require.NoError(t, repo.CreateIfVacant(context.Background(), booking))
	return booking
}

func TestHasOverlap_HalfOpenBoundaries(t *testing.T) {
	repo := newTestBookingRepo(t)
	ctx := context.Background()

	// Each test run books a fresh vehicle, so leftovers from earlier runs
	// cannot collide.
	vehicleID := uuid.New()
	start := time.Date(2026, 6, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	seedBooking(t, repo, vehicleID, start, end)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"back-to-back after: candidate starts at existing end", end, end.Add(24 * time.Hour), false},
		{"back-to-back before: candidate ends at existing start", start.Add(-24 * time.Hour), start, false},
		{"clearly before", start.Add(-72 * time.Hour), start.Add(-48 * time.Hour), false},
		{"clearly after", end.Add(24 * time.Hour), end.Add(48 * time.Hour), false},
		{"overlaps the tail", end.Add(-time.Hour), end.Add(24 * time.Hour), true},
		{"overlaps the head", start.Add(-24 * time.Hour), start.Add(time.Hour), true},
		{"contained inside", start.Add(time.Hour), end.Add(-time.Hour), true},
		{"contains the existing", start.Add(-time.Hour), end.Add(time.Hour), true},
		{"identical interval", start, end, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overlap, err := repo.HasOverlap(ctx, vehicleID, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, overlap)
		})
	}
}

func TestHasOverlap_StatusFilter(t *testing.T) {
	repo := newTestBookingRepo(t)
	ctx := context.Background()

	start := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	t.Run("cancelled bookings do not block", func(t *testing.T) {
		vehicleID := uuid.New()
		booking := seedBooking(t, repo, vehicleID, start, end)
		require.NoError(t, repo.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled))

		overlap, err := repo.HasOverlap(ctx, vehicleID, start, end)
		require.NoError(t, err)
		assert.False(t, overlap)
	})

	t.Run("paid bookings block", func(t *testing.T) {
		vehicleID := uuid.New()
		booking := seedBooking(t, repo, vehicleID, start, end)
		require.NoError(t, repo.UpdateStatus(ctx, booking.ID, entity.BookingStatusPaid))

		overlap, err := repo.HasOverlap(ctx, vehicleID, start, end)
		require.NoError(t, err)
		assert.True(t, overlap)
	})

	t.Run("other vehicles are unaffected", func(t *testing.T) {
		vehicleID := uuid.New()
		seedBooking(t, repo, vehicleID, start, end)

		overlap, err := repo.HasOverlap(ctx, uuid.New(), start, end)
		require.NoError(t, err)
		assert.False(t, overlap)
	})
}

func TestCreateIfVacant_GuardedInsert(t *testing.T) {
	repo := newTestBookingRepo(t)
	ctx := context.Background()

	vehicleID := uuid.New()
	start := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	seedBooking(t, repo, vehicleID, start, end)

	makeBooking := func(start, end time.Time) *entity.Booking {
		now := time.Now()
		return &entity.Booking{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:              uuid.New(),
			VehicleID:           vehicleID,
			StartDate:           start,
			EndDate:             end,
			Status:              entity.BookingStatusPendingPayment,
			PricePerDaySnapshot: 50,
			TotalAmount:         100,
		}
	}

	t.Run("overlapping insert is refused", func(t *testing.T) {
		refused := makeBooking(start.Add(time.Hour), end.Add(time.Hour))
		require.ErrorIs(t, repo.CreateIfVacant(ctx, refused), ErrOverlap)

		// The refused booking left no row behind.
		stored, err := repo.FindByID(ctx, refused.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("back-to-back insert succeeds", func(t *testing.T) {
		booking := makeBooking(end, end.Add(24*time.Hour))
		require.NoError(t, repo.CreateIfVacant(ctx, booking))

		stored, err := repo.FindByID(ctx, booking.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, entity.BookingStatusPendingPayment, stored.Status)
	})
}
