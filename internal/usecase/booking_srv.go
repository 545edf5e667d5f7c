package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ListMyBookings(ctx context.Context, userID string) ([]response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string, requesterID uuid.UUID, requesterRole string) (*response.BookingResponse, error)

	// Admin endpoint
	CancelBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo  *repository.Repository
	audit AuditService
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, audit AuditService, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		audit: audit,
		log:   log.With(zap.String("service", "booking")),
	}
}

// daysBetween counts rental days over the half-open interval [start, end),
// rounding partial days up. A 48h rental is 2 days; 49h is 3.
func daysBetween(start, end time.Time) int64 {
	d := end.Sub(start)
	days := int64(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s: %w", utils.FormatValidationErrors(errs), ErrInvalidInput)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, ErrInvalidInput)
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID format %s: %w", req.VehicleID, ErrInvalidInput)
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %s: %w", req.StartDate, ErrInvalidInput)
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %s: %w", req.EndDate, ErrInvalidInput)
	}

	if !start.Before(end) {
		return nil, fmt.Errorf("start date must be before end date: %w", ErrInvalidInput)
	}

	days := daysBetween(start, end)
	if days <= 0 {
		return nil, fmt.Errorf("invalid booking duration: %w", ErrInvalidInput)
	}

	// Vehicle must exist and be rentable
	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		s.log.Error("Failed to load vehicle", zap.Error(err), zap.String("vehicle_id", req.VehicleID))
		return nil, fmt.Errorf("load vehicle: %w", err)
	}
	if vehicle == nil || !vehicle.IsActive {
		return nil, fmt.Errorf("vehicle %s not found or unavailable: %w", req.VehicleID, ErrNotFound)
	}

	// Price snapshot protects the quoted total against later catalog edits
	pricePerDaySnapshot := vehicle.PricePerDay
	totalAmount := pricePerDaySnapshot * days

	// Fast-path availability check so the conflict path can audit without
	// opening a transaction. CreateIfVacant re-checks under the lock.
	overlap, err := s.repo.Booking.HasOverlap(ctx, vehicleID, start, end)
	if err != nil {
		s.log.Error("Failed to check availability", zap.Error(err), zap.String("vehicle_id", req.VehicleID))
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if overlap {
		return nil, s.overlapBlocked(ctx, vehicleID, start, end)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:              userUUID,
		VehicleID:           vehicleID,
		StartDate:           start,
		EndDate:             end,
		Status:              entity.BookingStatusPendingPayment,
		PricePerDaySnapshot: pricePerDaySnapshot,
		TotalAmount:         totalAmount,
	}

	if err := s.repo.Booking.CreateIfVacant(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			// A concurrent request took the interval after the fast-path check.
			return nil, s.overlapBlocked(ctx, vehicleID, start, end)
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("vehicle_id", req.VehicleID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.audit.Record(ctx, AuditEntry{
		Action:     entity.AuditBookingCreated,
		EntityType: "Booking",
		EntityID:   booking.ID.String(),
		Message:    "Booking created (pending payment)",
		Metadata: map[string]any{
			"vehicleId":   vehicleID.String(),
			"startDate":   start,
			"endDate":     end,
			"totalAmount": totalAmount,
		},
	})

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
		zap.String("vehicle_id", req.VehicleID),
		zap.Int64("days", days),
		zap.Int64("total_amount", totalAmount),
	)

	resp := response.BookingToResponse(booking, vehicle)
	return &resp, nil
}

func (s *bookingService) overlapBlocked(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) error {
	s.audit.Record(ctx, AuditEntry{
		Action:     entity.AuditBookingOverlapBlocked,
		EntityType: "Vehicle",
		EntityID:   vehicleID.String(),
		Message:    "Attempted overlapping booking",
		Metadata: map[string]any{
			"start": start,
			"end":   end,
		},
	})
	return fmt.Errorf("vehicle is already booked for the selected dates: %w", ErrConflict)
}

func (s *bookingService) ListMyBookings(ctx context.Context, userID string) ([]response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, ErrInvalidInput)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to get user bookings", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	// A user's history usually repeats a handful of vehicles; fetch each once.
	vehicles := make(map[uuid.UUID]*entity.Vehicle)
	items := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		vehicle, seen := vehicles[booking.VehicleID]
		if !seen {
			var vErr error
			vehicle, vErr = s.repo.Vehicle.FindByID(ctx, booking.VehicleID)
			if vErr != nil {
				// The booking itself is still returned, just without the summary.
				s.log.Warn("Failed to load vehicle for booking summary",
					zap.Error(vErr),
					zap.String("booking_id", booking.ID.String()),
					zap.String("vehicle_id", booking.VehicleID.String()),
				)
			}
			vehicles[booking.VehicleID] = vehicle
		}
		items[i] = response.BookingToResponse(booking, vehicle)
	}

	return items, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string, requesterID uuid.UUID, requesterRole string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, ErrInvalidInput)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found: %w", bookingID, ErrNotFound)
	}

	// Owners see their own bookings, admins see any
	if booking.UserID != requesterID && requesterRole != string(entity.RoleAdmin) {
		return nil, fmt.Errorf("not allowed to view booking %s: %w", bookingID, ErrForbidden)
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, booking.VehicleID)
	if err != nil {
		s.log.Warn("Failed to load vehicle for booking summary",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("vehicle_id", booking.VehicleID.String()),
		)
	}

	resp := response.BookingToResponse(booking, vehicle)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, ErrInvalidInput)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s not found: %w", bookingID, ErrNotFound)
	}

	// paid and cancelled are terminal
	if booking.Status != entity.BookingStatusPendingPayment {
		return fmt.Errorf("booking status is %s, cannot cancel: %w", booking.Status, ErrInvalidState)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
		s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", bookingID))
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.audit.Record(ctx, AuditEntry{
		Action:     entity.AuditBookingCancelled,
		EntityType: "Booking",
		EntityID:   booking.ID.String(),
		Message:    "Booking cancelled by admin",
	})

	s.log.Info("Booking cancelled", zap.String("booking_id", bookingID))

	return nil
}
