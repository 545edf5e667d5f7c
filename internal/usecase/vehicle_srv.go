package usecase

import (
	"context"
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

type VehicleService interface {
	// Public endpoints
	ListVehicles(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VehicleResponse], error)
	GetVehicleByID(ctx context.Context, vehicleID string) (*response.VehicleResponse, error)

	// Admin endpoints
	CreateVehicle(ctx context.Context, req *request.CreateVehicleRequest) (*response.VehicleResponse, error)
	UpdateVehicle(ctx context.Context, vehicleID string, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error)
	DeactivateVehicle(ctx context.Context, vehicleID string) error
}

type vehicleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVehicleService(repo *repository.Repository, log *zap.Logger) VehicleService {
	return &vehicleService{
		repo: repo,
		log:  log.With(zap.String("service", "vehicle")),
	}
}

func (s *vehicleService) ListVehicles(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VehicleResponse], error) {
	vehicles, err := s.repo.Vehicle.FindAll(ctx, true, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list vehicles", zap.Error(err))
		return nil, fmt.Errorf("list vehicles: %w", err)
	}

	total, err := s.repo.Vehicle.Count(ctx, true)
	if err != nil {
		s.log.Error("Failed to count vehicles", zap.Error(err))
		return nil, fmt.Errorf("count vehicles: %w", err)
	}

	items := make([]response.VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		items[i] = response.VehicleToResponse(v)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *vehicleService) GetVehicleByID(ctx context.Context, vehicleID string) (*response.VehicleResponse, error) {
	id, err := uuid.Parse(vehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID format %s: %w", vehicleID, ErrInvalidInput)
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load vehicle", zap.Error(err), zap.String("vehicle_id", vehicleID))
		return nil, fmt.Errorf("load vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehicle %s not found: %w", vehicleID, ErrNotFound)
	}

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) CreateVehicle(ctx context.Context, req *request.CreateVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create vehicle validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s: %w", utils.FormatValidationErrors(errs), ErrInvalidInput)
	}

	now := time.Now()
	vehicle := &entity.Vehicle{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Category:     req.Category,
		PricePerDay:  req.PricePerDay,
		Transmission: req.Transmission,
		FuelType:     req.FuelType,
		Seats:        req.Seats,
		IsActive:     true,
		ImageURL:     req.ImageURL,
	}

	if err := s.repo.Vehicle.Create(ctx, vehicle); err != nil {
		s.log.Error("Failed to create vehicle", zap.Error(err))
		return nil, fmt.Errorf("create vehicle: %w", err)
	}

	s.log.Info("Vehicle created",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("brand", vehicle.Brand),
		zap.String("model", vehicle.Model),
	)

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, vehicleID string, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update vehicle validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s: %w", utils.FormatValidationErrors(errs), ErrInvalidInput)
	}

	id, err := uuid.Parse(vehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID format %s: %w", vehicleID, ErrInvalidInput)
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehicle %s not found: %w", vehicleID, ErrNotFound)
	}

	vehicle.Brand = req.Brand
	vehicle.Model = req.Model
	vehicle.Year = req.Year
	vehicle.Category = req.Category
	vehicle.PricePerDay = req.PricePerDay
	vehicle.Transmission = req.Transmission
	vehicle.FuelType = req.FuelType
	vehicle.Seats = req.Seats
	vehicle.IsActive = *req.IsActive
	vehicle.ImageURL = req.ImageURL
	vehicle.UpdatedAt = time.Now()

	if err := s.repo.Vehicle.Update(ctx, vehicle); err != nil {
		s.log.Error("Failed to update vehicle", zap.Error(err), zap.String("vehicle_id", vehicleID))
		return nil, fmt.Errorf("update vehicle %s: %w", vehicleID, err)
	}

	s.log.Info("Vehicle updated", zap.String("vehicle_id", vehicleID))

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) DeactivateVehicle(ctx context.Context, vehicleID string) error {
	id, err := uuid.Parse(vehicleID)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID format %s: %w", vehicleID, ErrInvalidInput)
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load vehicle: %w", err)
	}
	if vehicle == nil {
		return fmt.Errorf("vehicle %s not found: %w", vehicleID, ErrNotFound)
	}

	if err := s.repo.Vehicle.Deactivate(ctx, id); err != nil {
		s.log.Error("Failed to deactivate vehicle", zap.Error(err), zap.String("vehicle_id", vehicleID))
		return fmt.Errorf("deactivate vehicle %s: %w", vehicleID, err)
	}

	s.log.Info("Vehicle deactivated", zap.String("vehicle_id", vehicleID))

	return nil
}
