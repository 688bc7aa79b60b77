package validators

import (
	"gorent/internal/models"
)

type CreateCarRequest struct {
	Brand           string  `json:"brand" form:"brand" validate:"required,min=2,max=50"`
	Model           string  `json:"model" form:"model" validate:"required,min=1,max=50"`
	Year            int     `json:"year" form:"year" validate:"required,min=1980,max=2100"`
	Category        string  `json:"category" form:"category" validate:"required"`
	SeatingCapacity int     `json:"seating_capacity" form:"seating_capacity" validate:"required,min=1,max=20"`
	FuelType        string  `json:"fuel_type" form:"fuel_type" validate:"required"`
	Transmission    string  `json:"transmission" form:"transmission" validate:"required"`
	PricePerDay     float64 `json:"price_per_day" form:"price_per_day" validate:"required,min=1"`
	Location        string  `json:"location" form:"location" validate:"required,min=2,max=100"`
	Description     string  `json:"description" form:"description" validate:"omitempty,max=2000"`
}

func ValidateCreateCar(req *CreateCarRequest) ValidationErrors {
	errs := ValidateStruct(req)

	if req.Category != "" && !models.CarCategory(req.Category).IsValid() {
		errs = append(errs, ValidationError{
			Field:   "category",
			Message: "unknown car category",
		})
	}
	if req.FuelType != "" && !models.FuelType(req.FuelType).IsValid() {
		errs = append(errs, ValidationError{
			Field:   "fuel_type",
			Message: "unknown fuel type",
		})
	}
	if req.Transmission != "" && !models.Transmission(req.Transmission).IsValid() {
		errs = append(errs, ValidationError{
			Field:   "transmission",
			Message: "unknown transmission type",
		})
	}

	return errs
}
