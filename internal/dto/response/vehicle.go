package response

import (
	"time"

	"car-rental/internal/data/entity"
)

type VehicleResponse struct {
	ID           string    `json:"id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Category     string    `json:"category"`
	PricePerDay  int64     `json:"price_per_day"`
	Transmission string    `json:"transmission"`
	FuelType     string    `json:"fuel_type"`
	Seats        int       `json:"seats"`
	IsActive     bool      `json:"is_active"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// VehicleSummary is the subset embedded in booking responses.
type VehicleSummary struct {
	ID          string `json:"id"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Category    string `json:"category"`
	PricePerDay int64  `json:"price_per_day"`
	ImageURL    string `json:"image_url,omitempty"`
}

func VehicleToResponse(v *entity.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID.String(),
		Brand:        v.Brand,
		Model:        v.Model,
		Year:         v.Year,
		Category:     v.Category,
		PricePerDay:  v.PricePerDay,
		Transmission: v.Transmission,
		FuelType:     v.FuelType,
		Seats:        v.Seats,
		IsActive:     v.IsActive,
		ImageURL:     v.ImageURL,
		CreatedAt:    v.CreatedAt,
	}
}

func VehicleToSummary(v *entity.Vehicle) *VehicleSummary {
	if v == nil {
		return nil
	}
	return &VehicleSummary{
		ID:          v.ID.String(),
		Brand:       v.Brand,
		Model:       v.Model,
		Category:    v.Category,
		PricePerDay: v.PricePerDay,
		ImageURL:    v.ImageURL,
	}
}
