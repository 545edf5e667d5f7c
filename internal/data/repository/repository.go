package repository

import (
	"car-rental/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Vehicle  VehicleRepository
	Booking  BookingRepository
	AuditLog AuditLogRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Vehicle:  NewVehicleRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		AuditLog: NewAuditLogRepository(db, log),
	}
}
