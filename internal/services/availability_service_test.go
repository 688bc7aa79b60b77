package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gorent/internal/models"
)

func carAt(location string, pricePerDay float64) *models.Car {
	ownerID := primitive.NewObjectID()
	return &models.Car{
		ID:          primitive.NewObjectID(),
		Owner:       &ownerID,
		Brand:       "Honda",
		Model:       "Civic",
		Year:        2021,
		Category:    models.CarCategorySedan,
		PricePerDay: pricePerDay,
		Location:    location,
		IsAvailable: true,
	}
}

func TestCheckAvailabilityFiltersOverlaps(t *testing.T) {
	carA := carAt("Munich", 40)
	carB := carAt("Munich", 60)
	carElsewhere := carAt("Hamburg", 30)

	bookingRepo := &mockBookingRepo{}
	carRepo := newMockCarRepo(carA, carB, carElsewhere)
	service := NewAvailabilityService(carRepo, bookingRepo, testLogger())

	pickup := time.Date(2027, 6, 10, 0, 0, 0, 0, time.UTC)
	ret := pickup.AddDate(0, 0, 4)

	// carA is taken for a range that overlaps the query.
	if err := bookingRepo.Create(context.Background(), &models.Booking{
		Car:        carA.ID,
		User:       primitive.NewObjectID(),
		Owner:      *carA.Owner,
		PickupDate: pickup.AddDate(0, 0, 2),
		ReturnDate: ret.AddDate(0, 0, 2),
		Status:     models.BookingStatusConfirmed,
	}); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	cars, err := service.CheckAvailability(context.Background(), "Munich", pickup, ret)
	if err != nil {
		t.Fatalf("CheckAvailability failed: %v", err)
	}

	if len(cars) != 1 || cars[0].ID != carB.ID {
		t.Fatalf("got %d cars, want only carB", len(cars))
	}
}

func TestCheckAvailabilityAdjacentRanges(t *testing.T) {
	car := carAt("Munich", 40)
	bookingRepo := &mockBookingRepo{}
	carRepo := newMockCarRepo(car)
	service := NewAvailabilityService(carRepo, bookingRepo, testLogger())

	pickup := time.Date(2027, 6, 10, 0, 0, 0, 0, time.UTC)
	ret := pickup.AddDate(0, 0, 4)

	// An existing booking that ends exactly at the query's pickup does not
	// block: ranges are half-open.
	if err := bookingRepo.Create(context.Background(), &models.Booking{
		Car:        car.ID,
		User:       primitive.NewObjectID(),
		Owner:      *car.Owner,
		PickupDate: pickup.AddDate(0, 0, -4),
		ReturnDate: pickup,
		Status:     models.BookingStatusConfirmed,
	}); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	cars, err := service.CheckAvailability(context.Background(), "Munich", pickup, ret)
	if err != nil {
		t.Fatalf("CheckAvailability failed: %v", err)
	}
	if len(cars) != 1 {
		t.Fatalf("back-to-back booking blocked the car")
	}
}

func TestCheckAvailabilityIgnoresCancelled(t *testing.T) {
	car := carAt("Munich", 40)
	bookingRepo := &mockBookingRepo{}
	carRepo := newMockCarRepo(car)
	service := NewAvailabilityService(carRepo, bookingRepo, testLogger())

	pickup := time.Date(2027, 6, 10, 0, 0, 0, 0, time.UTC)
	ret := pickup.AddDate(0, 0, 4)

	if err := bookingRepo.Create(context.Background(), &models.Booking{
		Car:        car.ID,
		User:       primitive.NewObjectID(),
		Owner:      *car.Owner,
		PickupDate: pickup,
		ReturnDate: ret,
		Status:     models.BookingStatusCancelled,
	}); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	cars, err := service.CheckAvailability(context.Background(), "Munich", pickup, ret)
	if err != nil {
		t.Fatalf("CheckAvailability failed: %v", err)
	}
	if len(cars) != 1 {
		t.Fatal("cancelled booking blocked the car")
	}
}

func TestCheckAvailabilityNoCandidates(t *testing.T) {
	bookingRepo := &mockBookingRepo{}
	carRepo := newMockCarRepo()
	service := NewAvailabilityService(carRepo, bookingRepo, testLogger())

	cars, err := service.CheckAvailability(context.Background(), "Nowhere", time.Now(), time.Now().AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("CheckAvailability failed: %v", err)
	}
	if len(cars) != 0 {
		t.Fatalf("got %d cars, want none", len(cars))
	}
}

func TestHasConflictPendingBlocks(t *testing.T) {
	car := carAt("Munich", 40)
	bookingRepo := &mockBookingRepo{}
	service := NewAvailabilityService(newMockCarRepo(car), bookingRepo, testLogger())

	pickup := time.Date(2027, 6, 10, 0, 0, 0, 0, time.UTC)
	ret := pickup.AddDate(0, 0, 4)

	if err := bookingRepo.Create(context.Background(), &models.Booking{
		Car:        car.ID,
		User:       primitive.NewObjectID(),
		Owner:      *car.Owner,
		PickupDate: pickup,
		ReturnDate: ret,
		Status:     models.BookingStatusPending,
	}); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	conflict, err := service.HasConflict(context.Background(), car.ID, pickup.AddDate(0, 0, 1), ret.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("HasConflict failed: %v", err)
	}
	if !conflict {
		t.Error("pending booking did not register as a conflict")
	}
}
