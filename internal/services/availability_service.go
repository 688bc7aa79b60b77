package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/pkg/logger"
)

type AvailabilityService interface {
	// CheckAvailability returns every available car at the location with no
	// pending or confirmed booking overlapping [pickupDate, returnDate).
	CheckAvailability(ctx context.Context, location string, pickupDate, returnDate time.Time) ([]*models.Car, error)

	// HasConflict is the single-car variant used to re-validate just before
	// a booking is persisted.
	HasConflict(ctx context.Context, carID primitive.ObjectID, pickupDate, returnDate time.Time) (bool, error)
}

type availabilityService struct {
	carRepo     interfaces.CarRepository
	bookingRepo interfaces.BookingRepository
	logger      *logger.Logger
}

func NewAvailabilityService(
	carRepo interfaces.CarRepository,
	bookingRepo interfaces.BookingRepository,
	log *logger.Logger,
) AvailabilityService {
	return &availabilityService{
		carRepo:     carRepo,
		bookingRepo: bookingRepo,
		logger:      log,
	}
}

func (s *availabilityService) CheckAvailability(ctx context.Context, location string, pickupDate, returnDate time.Time) ([]*models.Car, error) {
	candidates, err := s.carRepo.GetAvailableByLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []*models.Car{}, nil
	}

	carIDs := make([]primitive.ObjectID, 0, len(candidates))
	for _, car := range candidates {
		carIDs = append(carIDs, car.ID)
	}

	blocked, err := s.bookingRepo.GetOverlappingCarIDs(ctx, carIDs, pickupDate, returnDate)
	if err != nil {
		return nil, err
	}

	available := make([]*models.Car, 0, len(candidates))
	for _, car := range candidates {
		if !blocked[car.ID] {
			available = append(available, car)
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"location":   location,
		"candidates": len(candidates),
		"available":  len(available),
	}).Debug("Availability check completed")

	return available, nil
}

func (s *availabilityService) HasConflict(ctx context.Context, carID primitive.ObjectID, pickupDate, returnDate time.Time) (bool, error) {
	return s.bookingRepo.HasOverlapping(ctx, carID, pickupDate, returnDate)
}
