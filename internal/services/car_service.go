package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/internal/validators"
	"gorent/pkg/logger"
)

// OwnerDashboard is the management-console summary for one owner.
type OwnerDashboard struct {
	TotalCars         int64             `json:"total_cars"`
	TotalBookings     int64             `json:"total_bookings"`
	PendingBookings   int64             `json:"pending_bookings"`
	CompletedBookings int64             `json:"completed_bookings"`
	MonthlyRevenue    float64           `json:"monthly_revenue"`
	RecentBookings    []*models.Booking `json:"recent_bookings"`
}

type CarService interface {
	CreateCar(ctx context.Context, ownerID primitive.ObjectID, req *validators.CreateCarRequest, imageURL string) (*models.Car, error)
	GetCar(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	ListCars(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error)

	GetOwnerCars(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Car, error)
	ToggleAvailability(ctx context.Context, carID, ownerID primitive.ObjectID) (*models.Car, error)

	// DeleteCar soft-deletes: the owner reference is cleared and the car
	// made unavailable, but the record stays for booking history.
	DeleteCar(ctx context.Context, carID, ownerID primitive.ObjectID) error

	GetOwnerDashboard(ctx context.Context, ownerID primitive.ObjectID) (*OwnerDashboard, error)
}

type carService struct {
	carRepo     interfaces.CarRepository
	bookingRepo interfaces.BookingRepository
	logger      *logger.Logger
}

func NewCarService(
	carRepo interfaces.CarRepository,
	bookingRepo interfaces.BookingRepository,
	log *logger.Logger,
) CarService {
	return &carService{
		carRepo:     carRepo,
		bookingRepo: bookingRepo,
		logger:      log,
	}
}

func (s *carService) CreateCar(ctx context.Context, ownerID primitive.ObjectID, req *validators.CreateCarRequest, imageURL string) (*models.Car, error) {
	if errs := validators.ValidateCreateCar(req); errs != nil {
		return nil, errs
	}

	car := &models.Car{
		Owner:           &ownerID,
		Brand:           req.Brand,
		Model:           req.Model,
		Year:            req.Year,
		Category:        models.CarCategory(req.Category),
		SeatingCapacity: req.SeatingCapacity,
		FuelType:        models.FuelType(req.FuelType),
		Transmission:    models.Transmission(req.Transmission),
		PricePerDay:     req.PricePerDay,
		Location:        req.Location,
		Description:     utils.SanitizeString(req.Description),
		Image:           imageURL,
		IsAvailable:     true,
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, err
	}

	s.logger.WithCarID(car.ID).WithUserID(ownerID).Info("Car listed")

	return car, nil
}

func (s *carService) GetCar(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

func (s *carService) ListCars(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	return s.carRepo.List(ctx, params)
}

func (s *carService) GetOwnerCars(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Car, error) {
	return s.carRepo.GetByOwnerID(ctx, ownerID)
}

func (s *carService) ToggleAvailability(ctx context.Context, carID, ownerID primitive.ObjectID) (*models.Car, error) {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.Owner == nil || *car.Owner != ownerID {
		return nil, ErrNotCarOwner
	}

	if err := s.carRepo.SetAvailability(ctx, carID, !car.IsAvailable); err != nil {
		return nil, err
	}

	car.IsAvailable = !car.IsAvailable
	return car, nil
}

func (s *carService) DeleteCar(ctx context.Context, carID, ownerID primitive.ObjectID) error {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return err
	}
	if car.Owner == nil || *car.Owner != ownerID {
		return ErrNotCarOwner
	}

	if err := s.carRepo.SoftDelete(ctx, carID); err != nil {
		return err
	}

	s.logger.WithCarID(carID).WithUserID(ownerID).Info("Car delisted")

	return nil
}

func (s *carService) GetOwnerDashboard(ctx context.Context, ownerID primitive.ObjectID) (*OwnerDashboard, error) {
	dashboard := &OwnerDashboard{}

	var err error
	if dashboard.TotalCars, err = s.carRepo.CountByOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	if dashboard.TotalBookings, err = s.bookingRepo.CountByOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	if dashboard.PendingBookings, err = s.bookingRepo.CountByOwnerAndStatus(ctx, ownerID, models.BookingStatusPending); err != nil {
		return nil, err
	}
	if dashboard.CompletedBookings, err = s.bookingRepo.CountByOwnerAndStatus(ctx, ownerID, models.BookingStatusCompleted); err != nil {
		return nil, err
	}
	if dashboard.MonthlyRevenue, err = s.bookingRepo.RevenueByOwnerSince(ctx, ownerID, utils.StartOfMonth(time.Now().UTC())); err != nil {
		return nil, err
	}
	if dashboard.RecentBookings, err = s.bookingRepo.GetRecentByOwner(ctx, ownerID, 5); err != nil {
		return nil, err
	}

	return dashboard, nil
}
