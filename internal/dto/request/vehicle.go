package request

type CreateVehicleRequest struct {
	Brand        string `json:"brand" validate:"required,max=60"`
	Model        string `json:"model" validate:"required,max=60"`
	Year         int    `json:"year" validate:"required,min=1990,max=2050"`
	Category     string `json:"category" validate:"required,max=40"`
	PricePerDay  int64  `json:"price_per_day" validate:"required,min=1"`
	Transmission string `json:"transmission" validate:"required,max=20"`
	FuelType     string `json:"fuel_type" validate:"required,max=20"`
	Seats        int    `json:"seats" validate:"required,min=1,max=12"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
}

type UpdateVehicleRequest struct {
	Brand        string `json:"brand" validate:"required,max=60"`
	Model        string `json:"model" validate:"required,max=60"`
	Year         int    `json:"year" validate:"required,min=1990,max=2050"`
	Category     string `json:"category" validate:"required,max=40"`
	PricePerDay  int64  `json:"price_per_day" validate:"required,min=1"`
	Transmission string `json:"transmission" validate:"required,max=20"`
	FuelType     string `json:"fuel_type" validate:"required,max=20"`
	Seats        int    `json:"seats" validate:"required,min=1,max=12"`
	IsActive     *bool  `json:"is_active" validate:"required"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
}
