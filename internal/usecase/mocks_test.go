package usecase

import (
	"context"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/gateway"

	"github.com/google/uuid"
)

// Function-field fakes. A nil field means "not expected in this test"; the
// zero-value return keeps unrelated paths quiet.

type fakeUserRepo struct {
	CreateFn      func(ctx context.Context, user *entity.User) error
	FindByIDFn    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmailFn func(ctx context.Context, email string) (*entity.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, user)
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.FindByIDFn == nil {
		return nil, nil
	}
	return f.FindByIDFn(ctx, id)
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.FindByEmailFn == nil {
		return nil, nil
	}
	return f.FindByEmailFn(ctx, email)
}

type fakeSessionRepo struct {
	CreateFn           func(ctx context.Context, session *entity.Session) error
	FindValidSessionFn func(ctx context.Context, token string) (*entity.Session, error)
	RevokeFn           func(ctx context.Context, token string) error
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, session)
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if f.FindValidSessionFn == nil {
		return nil, nil
	}
	return f.FindValidSessionFn(ctx, token)
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	if f.RevokeFn == nil {
		return nil
	}
	return f.RevokeFn(ctx, token)
}

type fakeVehicleRepo struct {
	CreateFn     func(ctx context.Context, vehicle *entity.Vehicle) error
	FindByIDFn   func(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	FindAllFn    func(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Vehicle, error)
	CountFn      func(ctx context.Context, activeOnly bool) (int64, error)
	UpdateFn     func(ctx context.Context, vehicle *entity.Vehicle) error
	DeactivateFn func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeVehicleRepo) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, vehicle)
}

func (f *fakeVehicleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	if f.FindByIDFn == nil {
		return nil, nil
	}
	return f.FindByIDFn(ctx, id)
}

func (f *fakeVehicleRepo) FindAll(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Vehicle, error) {
	if f.FindAllFn == nil {
		return nil, nil
	}
	return f.FindAllFn(ctx, activeOnly, limit, offset)
}

func (f *fakeVehicleRepo) Count(ctx context.Context, activeOnly bool) (int64, error) {
	if f.CountFn == nil {
		return 0, nil
	}
	return f.CountFn(ctx, activeOnly)
}

func (f *fakeVehicleRepo) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	if f.UpdateFn == nil {
		return nil
	}
	return f.UpdateFn(ctx, vehicle)
}

func (f *fakeVehicleRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	if f.DeactivateFn == nil {
		return nil
	}
	return f.DeactivateFn(ctx, id)
}

type fakeBookingRepo struct {
	FindByIDFn       func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserIDFn   func(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	HasOverlapFn     func(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) (bool, error)
	CreateIfVacantFn func(ctx context.Context, booking *entity.Booking) error
	UpdateFn         func(ctx context.Context, booking *entity.Booking) error
	UpdateStatusFn   func(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error

	created []*entity.Booking
	updated []*entity.Booking
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if f.FindByIDFn == nil {
		return nil, nil
	}
	return f.FindByIDFn(ctx, id)
}

func (f *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	if f.FindByUserIDFn == nil {
		return nil, nil
	}
	return f.FindByUserIDFn(ctx, userID)
}

func (f *fakeBookingRepo) HasOverlap(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) (bool, error) {
	if f.HasOverlapFn == nil {
		return false, nil
	}
	return f.HasOverlapFn(ctx, vehicleID, start, end)
}

func (f *fakeBookingRepo) CreateIfVacant(ctx context.Context, booking *entity.Booking) error {
	if f.CreateIfVacantFn != nil {
		if err := f.CreateIfVacantFn(ctx, booking); err != nil {
			return err
		}
	}
	f.created = append(f.created, booking)
	return nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	if f.UpdateFn != nil {
		if err := f.UpdateFn(ctx, booking); err != nil {
			return err
		}
	}
	f.updated = append(f.updated, booking)
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	if f.UpdateStatusFn == nil {
		return nil
	}
	return f.UpdateStatusFn(ctx, bookingID, status)
}

type fakeAuditLogRepo struct {
	CreateFn func(ctx context.Context, log *entity.AuditLog) error

	entries []*entity.AuditLog
}

func (f *fakeAuditLogRepo) Create(ctx context.Context, auditLog *entity.AuditLog) error {
	if f.CreateFn != nil {
		if err := f.CreateFn(ctx, auditLog); err != nil {
			return err
		}
	}
	f.entries = append(f.entries, auditLog)
	return nil
}

func (f *fakeAuditLogRepo) FindFiltered(ctx context.Context, filter repository.AuditLogFilter, limit, offset int) ([]*entity.AuditLog, error) {
	return f.entries, nil
}

func (f *fakeAuditLogRepo) CountFiltered(ctx context.Context, filter repository.AuditLogFilter) (int64, error) {
	return int64(len(f.entries)), nil
}

func (f *fakeAuditLogRepo) actions() []string {
	var actions []string
	for _, e := range f.entries {
		actions = append(actions, e.Action)
	}
	return actions
}

type fakeCheckoutGateway struct {
	CreateSessionFn func(ctx context.Context, params *gateway.CheckoutParams) (*gateway.CheckoutSession, error)

	lastParams *gateway.CheckoutParams
}

func (f *fakeCheckoutGateway) CreateSession(ctx context.Context, params *gateway.CheckoutParams) (*gateway.CheckoutSession, error) {
	f.lastParams = params
	if f.CreateSessionFn == nil {
		return &gateway.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.test/cs_test_123"}, nil
	}
	return f.CreateSessionFn(ctx, params)
}

func newTestRepository(bookings *fakeBookingRepo, vehicles *fakeVehicleRepo, audits *fakeAuditLogRepo) *repository.Repository {
	if bookings == nil {
		bookings = &fakeBookingRepo{}
	}
	if vehicles == nil {
		vehicles = &fakeVehicleRepo{}
	}
	if audits == nil {
		audits = &fakeAuditLogRepo{}
	}
	return &repository.Repository{
		User:     &fakeUserRepo{},
		Session:  &fakeSessionRepo{},
		Vehicle:  vehicles,
		Booking:  bookings,
		AuditLog: audits,
	}
}
