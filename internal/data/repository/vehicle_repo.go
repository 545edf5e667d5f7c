package repository

import (
	"context"
	"fmt"

	"car-rental/internal/data/entity"
	"car-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	FindAll(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Vehicle, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type vehicleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehicleRepository(db database.PgxIface, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle")),
	}
}

const vehicleColumns = `id, brand, model, year, category, price_per_day,
       transmission, fuel_type, seats, is_active, image_url, created_at, updated_at`

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := row.Scan(
		&v.ID,
		&v.Brand,
		&v.Model,
		&v.Year,
		&v.Category,
		&v.PricePerDay,
		&v.Transmission,
		&v.FuelType,
		&v.Seats,
		&v.IsActive,
		&v.ImageURL,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, brand, model, year, category, price_per_day,
		                     transmission, fuel_type, seats, is_active, image_url,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Year,
		vehicle.Category,
		vehicle.PricePerDay,
		vehicle.Transmission,
		vehicle.FuelType,
		vehicle.Seats,
		vehicle.IsActive,
		vehicle.ImageURL,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create vehicle",
			zap.Error(err),
			zap.String("brand", vehicle.Brand),
			zap.String("model", vehicle.Model),
		)
		return fmt.Errorf("create vehicle: %w", err)
	}

	return nil
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle by ID",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return nil, fmt.Errorf("find vehicle by ID %s: %w", id.String(), err)
	}

	return vehicle, nil
}

func (r *vehicleRepository) FindAll(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY brand, model LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list vehicles", zap.Error(err))
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			r.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, nil
}

func (r *vehicleRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM vehicles`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count vehicles", zap.Error(err))
		return 0, fmt.Errorf("count vehicles: %w", err)
	}

	return count, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles
		SET brand = $2, model = $3, year = $4, category = $5, price_per_day = $6,
		    transmission = $7, fuel_type = $8, seats = $9, is_active = $10,
		    image_url = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Year,
		vehicle.Category,
		vehicle.PricePerDay,
		vehicle.Transmission,
		vehicle.FuelType,
		vehicle.Seats,
		vehicle.IsActive,
		vehicle.ImageURL,
		vehicle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update vehicle",
			zap.Error(err),
			zap.String("vehicle_id", vehicle.ID.String()),
		)
		return fmt.Errorf("update vehicle %s: %w", vehicle.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", vehicle.ID.String())
	}

	return nil
}

func (r *vehicleRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE vehicles SET is_active = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate vehicle",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return fmt.Errorf("deactivate vehicle %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", id.String())
	}

	return nil
}
