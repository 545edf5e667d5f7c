package entity

// Vehicle is a rentable car in the catalog. PricePerDay is kept in whole
// currency units so checkout amounts convert to minor units without
// floating point.
type Vehicle struct {
	Base
	Brand        string `db:"brand"`
	Model        string `db:"model"`
	Year         int    `db:"year"`
	Category     string `db:"category"`
	PricePerDay  int64  `db:"price_per_day"`
	Transmission string `db:"transmission"`
	FuelType     string `db:"fuel_type"`
	Seats        int    `db:"seats"`
	IsActive     bool   `db:"is_active"`
	ImageURL     string `db:"image_url"`
}
