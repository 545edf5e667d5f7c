package request

type CreateBookingRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required,uuid4"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}
