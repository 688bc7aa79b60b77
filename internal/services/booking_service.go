package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gorent/internal/locks"
	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/internal/validators"
	"gorent/pkg/logger"
)

type BookingService interface {
	// CreateBooking runs the whole booking-creation flow: validate, take the
	// (car, date-range) lock, re-check availability, price, persist pending.
	CreateBooking(ctx context.Context, userID primitive.ObjectID, req *validators.CreateBookingRequest) (*models.Booking, error)

	// ChangeStatus is the owner's approve/reject transition. Only
	// pending→confirmed and pending→cancelled are legal.
	ChangeStatus(ctx context.Context, bookingID, ownerID primitive.ObjectID, status models.BookingStatus) (*models.Booking, error)

	// CancelBooking is the renter's withdrawal, permitted while the booking
	// is pending or confirmed.
	CancelBooking(ctx context.Context, bookingID, userID primitive.ObjectID) (*models.Booking, error)

	GetBooking(ctx context.Context, bookingID, requesterID primitive.ObjectID) (*models.Booking, error)
	GetUserBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetOwnerBookings(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
}

type bookingService struct {
	bookingRepo  interfaces.BookingRepository
	carRepo      interfaces.CarRepository
	availability AvailabilityService
	lockTable    *locks.Table
	cache        CacheService
	lockTTL      time.Duration
	logger       *logger.Logger
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	carRepo interfaces.CarRepository,
	availability AvailabilityService,
	lockTable *locks.Table,
	cache CacheService,
	lockTTL time.Duration,
	log *logger.Logger,
) BookingService {
	if lockTTL <= 0 {
		lockTTL = locks.DefaultTTL
	}
	return &bookingService{
		bookingRepo:  bookingRepo,
		carRepo:      carRepo,
		availability: availability,
		lockTable:    lockTable,
		cache:        cache,
		lockTTL:      lockTTL,
		logger:       log,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID primitive.ObjectID, req *validators.CreateBookingRequest) (*models.Booking, error) {
	dates, validationErrs := validators.ValidateCreateBooking(req)
	if validationErrs != nil {
		return nil, validationErrs
	}

	carID, err := primitive.ObjectIDFromHex(req.Car)
	if err != nil {
		return nil, validators.ValidationErrors{{Field: "car", Message: "must be a valid object ID"}}
	}

	// The lock must span the availability re-check and the insert; between
	// the two this request can yield to another on the same key.
	key := locks.Key(carID, dates.Pickup, dates.Return)
	if !s.lockTable.TryAcquire(key) {
		return nil, ErrBookingLocked
	}
	defer s.lockTable.Release(key)

	release, err := s.acquireLease(ctx, key)
	if err != nil {
		return nil, err
	}
	defer release()

	conflict, err := s.availability.HasConflict(ctx, carID, dates.Pickup, dates.Return)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrCarUnavailable
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if !car.IsAvailable || car.Owner == nil {
		return nil, ErrCarUnavailable
	}

	booking := &models.Booking{
		Car:        car.ID,
		User:       userID,
		Owner:      *car.Owner,
		PickupDate: dates.Pickup,
		ReturnDate: dates.Return,
		Status:     models.BookingStatusPending,
		Price:      utils.CalculateRentalPrice(car.PricePerDay, dates.Pickup, dates.Return),
		UserDetails: models.RenterDetails{
			FullName:      req.UserDetails.FullName,
			Email:         req.UserDetails.Email,
			Phone:         req.UserDetails.Phone,
			DateOfBirth:   dates.DateOfBirth,
			LicenseNumber: req.UserDetails.LicenseNumber,
			LicenseExpiry: dates.LicenseExpiry,
		},
		PickupDetails: models.HandoverDetails{
			Address: req.PickupDetails.Address,
			Time:    req.PickupDetails.Time,
		},
		ReturnDetails: models.HandoverDetails{
			Address: req.ReturnDetails.Address,
			Time:    req.ReturnDetails.Time,
		},
		Extras: models.BookingExtras{
			ExtraDriver: req.Extras.ExtraDriver,
		},
		Notes: utils.SanitizeString(req.Notes),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, ErrDuplicateBooking
		}
		return nil, err
	}

	s.logger.LogBookingEvent(booking.ID, "created", map[string]interface{}{
		"car_id":      car.ID.Hex(),
		"user_id":     userID.Hex(),
		"pickup_date": dates.Pickup,
		"return_date": dates.Return,
		"price":       booking.Price,
	})

	return booking, nil
}

// acquireLease mirrors the in-process lock in Redis so a second instance
// fails fast too. With no cache wired this is a no-op; the unique index
// remains the durable backstop either way.
func (s *bookingService) acquireLease(ctx context.Context, key string) (func(), error) {
	if s.cache == nil {
		return func() {}, nil
	}

	leaseKey := "booking_lock:" + key
	acquired, err := s.cache.SetNX(ctx, leaseKey, time.Now().Unix(), s.lockTTL)
	if err != nil {
		// A broken cache must not block bookings.
		s.logger.WithError(err).Warn("Booking lease unavailable, relying on unique index")
		return func() {}, nil
	}
	if !acquired {
		return nil, ErrBookingLocked
	}

	return func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), leaseKey); err != nil {
			s.logger.WithError(err).WithField("key", leaseKey).Warn("Failed to release booking lease")
		}
	}, nil
}

func (s *bookingService) ChangeStatus(ctx context.Context, bookingID, ownerID primitive.ObjectID, status models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Owner != ownerID {
		return nil, ErrNotBookingOwner
	}
	if !booking.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(bookingID, "status_changed", map[string]interface{}{
		"from": booking.Status,
		"to":   status,
	})

	booking.Status = status
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID, userID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.User != userID {
		return nil, ErrNotBookingRenter
	}
	if !booking.Status.CanBeCancelledByRenter() {
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, models.BookingStatusCancelled); err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(bookingID, "cancelled_by_renter", map[string]interface{}{
		"user_id": userID.Hex(),
	})

	booking.Status = models.BookingStatusCancelled
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID, requesterID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.User != requesterID && booking.Owner != requesterID {
		return nil, ErrBookingForbidden
	}

	return booking, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetByUserID(ctx, userID, params)
}

func (s *bookingService) GetOwnerBookings(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetByOwnerID(ctx, ownerID, params)
}
