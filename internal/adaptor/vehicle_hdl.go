package adaptor

import (
	"encoding/json"
	"net/http"

	"car-rental/internal/dto/request"
	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VehicleHandler struct {
	service usecase.VehicleService
	log     *zap.Logger
}

func NewVehicleHandler(service usecase.VehicleService, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		log:     log,
	}
}

// ListVehicles handles GET /api/cars
func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	response, err := h.service.ListVehicles(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list vehicles")
		return
	}

	utils.ResponseSuccess(w, "Vehicles retrieved successfully", response)
}

// GetVehicleByID handles GET /api/cars/{id}
func (h *VehicleHandler) GetVehicleByID(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")

	response, err := h.service.GetVehicleByID(r.Context(), vehicleID)
	if err != nil {
		handleServiceError(w, h.log, err, "get vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle retrieved successfully", response)
}

// CreateVehicle handles POST /api/cars (admin)
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req request.CreateVehicleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.CreateVehicle(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create vehicle")
		return
	}

	utils.ResponseCreated(w, "Vehicle created successfully", response)
}

// UpdateVehicle handles PUT /api/cars/{id} (admin)
func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")

	var req request.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.UpdateVehicle(r.Context(), vehicleID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle updated successfully", response)
}

// DeactivateVehicle handles DELETE /api/cars/{id} (admin)
func (h *VehicleHandler) DeactivateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")

	if err := h.service.DeactivateVehicle(r.Context(), vehicleID); err != nil {
		handleServiceError(w, h.log, err, "deactivate vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle deactivated successfully", nil)
}
