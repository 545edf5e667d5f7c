package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrOverlap is returned by CreateIfVacant when the interval was taken
// between the caller's availability check and the insert.
var ErrOverlap = errors.New("booking interval overlaps an existing booking")

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	HasOverlap(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) (bool, error)
	CreateIfVacant(ctx context.Context, booking *entity.Booking) error
	Update(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, vehicle_id, start_date, end_date, status,
       price_per_day_snapshot, total_amount, stripe_session_id,
       stripe_payment_intent_id, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.VehicleID,
		&b.StartDate,
		&b.EndDate,
		&b.Status,
		&b.PricePerDaySnapshot,
		&b.TotalAmount,
		&b.StripeSessionID,
		&b.StripePaymentIntentID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

// overlapQuery implements the half-open interval test: an active booking B
// collides with [start, end) iff B.start_date < end AND B.end_date > start.
// Back-to-back bookings share an endpoint and do not match.
const overlapQuery = `
	SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE vehicle_id = $1
		  AND status IN ('pending_payment', 'paid')
		  AND start_date < $3
		  AND end_date > $2
	)
`

func (r *bookingRepository) HasOverlap(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, overlapQuery, vehicleID, start, end).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check booking overlap",
			zap.Error(err),
			zap.String("vehicle_id", vehicleID.String()),
		)
		return false, fmt.Errorf("check overlap for vehicle %s: %w", vehicleID.String(), err)
	}

	return exists, nil
}

// CreateIfVacant inserts the booking inside a transaction that holds a
// per-vehicle advisory lock, re-checking the interval under the lock.
// Concurrent creates for the same vehicle serialize here, which closes the
// check-then-act window between HasOverlap and the insert.
func (r *bookingRepository) CreateIfVacant(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock is released automatically at commit/rollback.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, booking.VehicleID.String()); err != nil {
		return fmt.Errorf("acquire vehicle lock %s: %w", booking.VehicleID.String(), err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, overlapQuery, booking.VehicleID, booking.StartDate, booking.EndDate).Scan(&exists); err != nil {
		return fmt.Errorf("recheck overlap for vehicle %s: %w", booking.VehicleID.String(), err)
	}
	if exists {
		return ErrOverlap
	}

	insert := `
		INSERT INTO bookings (id, user_id, vehicle_id, start_date, end_date, status,
		                     price_per_day_snapshot, total_amount, stripe_session_id,
		                     stripe_payment_intent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = tx.Exec(ctx, insert,
		booking.ID,
		booking.UserID,
		booking.VehicleID,
		booking.StartDate,
		booking.EndDate,
		booking.Status,
		booking.PricePerDaySnapshot,
		booking.TotalAmount,
		booking.StripeSessionID,
		booking.StripePaymentIntentID,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("vehicle_id", booking.VehicleID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, stripe_session_id = $3, stripe_payment_intent_id = $4,
		    updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Status,
		booking.StripeSessionID,
		booking.StripePaymentIntentID,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}
