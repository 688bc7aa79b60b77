package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarCategory string
type FuelType string
type Transmission string

const (
	CarCategorySedan       CarCategory = "Sedan"
	CarCategorySUV         CarCategory = "SUV"
	CarCategoryVan         CarCategory = "Van"
	CarCategorySportsCar   CarCategory = "Sports Car"
	CarCategoryConvertible CarCategory = "Convertible"
	CarCategoryCoupe       CarCategory = "Coupe"
	CarCategoryHatchback   CarCategory = "Hatchback"
	CarCategoryWagon       CarCategory = "Wagon"
	CarCategoryMinivan     CarCategory = "Minivan"
	CarCategoryPickupTruck CarCategory = "Pickup Truck"
	CarCategoryTruck       CarCategory = "Truck"

	FuelTypePetrol   FuelType = "Petrol"
	FuelTypeDiesel   FuelType = "Diesel"
	FuelTypeElectric FuelType = "Electric"
	FuelTypeHybrid   FuelType = "Hybrid"
	FuelTypeGas      FuelType = "Gas"

	TransmissionAutomatic     Transmission = "Automatic"
	TransmissionManual        Transmission = "Manual"
	TransmissionSemiAutomatic Transmission = "Semi-Automatic"
)

// Car is a rentable vehicle listed by an owner. Owner is a pointer so a
// soft-deleted listing can keep its booking history with the owner cleared.
type Car struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Owner           *primitive.ObjectID `json:"owner" bson:"owner"`
	Brand           string              `json:"brand" bson:"brand" validate:"required"`
	Model           string              `json:"model" bson:"model" validate:"required"`
	Year            int                 `json:"year" bson:"year" validate:"required,min=1980"`
	Category        CarCategory         `json:"category" bson:"category" validate:"required"`
	SeatingCapacity int                 `json:"seating_capacity" bson:"seating_capacity" validate:"required,min=1,max=20"`
	FuelType        FuelType            `json:"fuel_type" bson:"fuel_type" validate:"required"`
	Transmission    Transmission        `json:"transmission" bson:"transmission" validate:"required"`
	PricePerDay     float64             `json:"price_per_day" bson:"price_per_day" validate:"required,min=1"`
	Location        string              `json:"location" bson:"location" validate:"required"`
	Description     string              `json:"description" bson:"description"`
	Image           string              `json:"image" bson:"image"`
	IsAvailable     bool                `json:"is_available" bson:"is_available" default:"true"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updated_at"`
	DeletedAt       *time.Time          `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

var carCategories = []CarCategory{
	CarCategorySedan, CarCategorySUV, CarCategoryVan, CarCategorySportsCar,
	CarCategoryConvertible, CarCategoryCoupe, CarCategoryHatchback,
	CarCategoryWagon, CarCategoryMinivan, CarCategoryPickupTruck, CarCategoryTruck,
}

func (c CarCategory) IsValid() bool {
	for _, category := range carCategories {
		if c == category {
			return true
		}
	}
	return false
}

func (f FuelType) IsValid() bool {
	switch f {
	case FuelTypePetrol, FuelTypeDiesel, FuelTypeElectric, FuelTypeHybrid, FuelTypeGas:
		return true
	}
	return false
}

func (t Transmission) IsValid() bool {
	switch t {
	case TransmissionAutomatic, TransmissionManual, TransmissionSemiAutomatic:
		return true
	}
	return false
}
