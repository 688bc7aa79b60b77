package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/pkg/logger"
)

func testLogger() *logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: "stderr"})
	return log
}

// mockBookingRepo keeps bookings in memory and enforces the same unique
// (user, car, pickup, return) constraint the Mongo index provides.
type mockBookingRepo struct {
	mu       sync.Mutex
	bookings []*models.Booking

	// createDelay widens the window between the availability check and the
	// insert so races are observable in tests.
	createDelay time.Duration
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if m.createDelay > 0 {
		time.Sleep(m.createDelay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.bookings {
		if existing.User == booking.User && existing.Car == booking.Car &&
			existing.PickupDate.Equal(booking.PickupDate) && existing.ReturnDate.Equal(booking.ReturnDate) {
			return fmt.Errorf("booking already exists: %w", interfaces.ErrDuplicate)
		}
	}

	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	stored := *booking
	m.bookings = append(m.bookings, &stored)
	return nil
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, booking := range m.bookings {
		if booking.ID == id {
			copied := *booking
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", id.Hex(), interfaces.ErrNotFound)
}

func (m *mockBookingRepo) HasOverlapping(ctx context.Context, carID primitive.ObjectID, pickupDate, returnDate time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, booking := range m.bookings {
		if booking.Car != carID {
			continue
		}
		if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
			continue
		}
		if booking.PickupDate.Before(returnDate) && booking.ReturnDate.After(pickupDate) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBookingRepo) GetOverlappingCarIDs(ctx context.Context, carIDs []primitive.ObjectID, pickupDate, returnDate time.Time) (map[primitive.ObjectID]bool, error) {
	blocked := make(map[primitive.ObjectID]bool)
	for _, carID := range carIDs {
		overlap, err := m.HasOverlapping(ctx, carID, pickupDate, returnDate)
		if err != nil {
			return nil, err
		}
		if overlap {
			blocked[carID] = true
		}
	}
	return blocked, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, booking := range m.bookings {
		if booking.ID == id {
			booking.Status = status
			booking.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("booking %s: %w", id.Hex(), interfaces.ErrNotFound)
}

func (m *mockBookingRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.Booking
	for _, booking := range m.bookings {
		if booking.User == userID {
			copied := *booking
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockBookingRepo) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.Booking
	for _, booking := range m.bookings {
		if booking.Owner == ownerID {
			copied := *booking
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockBookingRepo) CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	bookings, total, _ := m.GetByOwnerID(ctx, ownerID, nil)
	_ = bookings
	return total, nil
}

func (m *mockBookingRepo) CountByOwnerAndStatus(ctx context.Context, ownerID primitive.ObjectID, status models.BookingStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, booking := range m.bookings {
		if booking.Owner == ownerID && booking.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockBookingRepo) GetRecentByOwner(ctx context.Context, ownerID primitive.ObjectID, limit int) ([]*models.Booking, error) {
	bookings, _, _ := m.GetByOwnerID(ctx, ownerID, nil)
	if len(bookings) > limit {
		bookings = bookings[:limit]
	}
	return bookings, nil
}

func (m *mockBookingRepo) RevenueByOwnerSince(ctx context.Context, ownerID primitive.ObjectID, since time.Time) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, booking := range m.bookings {
		if booking.Owner == ownerID && booking.Status != models.BookingStatusCancelled && !booking.CreatedAt.Before(since) {
			total += booking.Price
		}
	}
	return total, nil
}

func (m *mockBookingRepo) nonCancelledCount(carID primitive.ObjectID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, booking := range m.bookings {
		if booking.Car == carID && booking.Status != models.BookingStatusCancelled {
			count++
		}
	}
	return count
}

// mockCarRepo serves a fixed set of cars.
type mockCarRepo struct {
	mu   sync.Mutex
	cars map[primitive.ObjectID]*models.Car
}

func newMockCarRepo(cars ...*models.Car) *mockCarRepo {
	repo := &mockCarRepo{cars: make(map[primitive.ObjectID]*models.Car)}
	for _, car := range cars {
		repo.cars[car.ID] = car
	}
	return repo
}

func (m *mockCarRepo) Create(ctx context.Context, car *models.Car) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if car.ID.IsZero() {
		car.ID = primitive.NewObjectID()
	}
	car.CreatedAt = time.Now()
	m.cars[car.ID] = car
	return nil
}

func (m *mockCarRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	car, ok := m.cars[id]
	if !ok {
		return nil, fmt.Errorf("car %s: %w", id.Hex(), interfaces.ErrNotFound)
	}
	copied := *car
	return &copied, nil
}

func (m *mockCarRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	car, ok := m.cars[id]
	if !ok {
		return fmt.Errorf("car %s: %w", id.Hex(), interfaces.ErrNotFound)
	}
	now := time.Now()
	car.Owner = nil
	car.IsAvailable = false
	car.DeletedAt = &now
	return nil
}

func (m *mockCarRepo) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.Car
	for _, car := range m.cars {
		if car.Owner != nil && *car.Owner == ownerID {
			copied := *car
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *mockCarRepo) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	car, ok := m.cars[id]
	if !ok {
		return fmt.Errorf("car %s: %w", id.Hex(), interfaces.ErrNotFound)
	}
	car.IsAvailable = available
	return nil
}

func (m *mockCarRepo) CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	cars, _ := m.GetByOwnerID(ctx, ownerID)
	return int64(len(cars)), nil
}

func (m *mockCarRepo) GetAvailableByLocation(ctx context.Context, location string) ([]*models.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.Car
	for _, car := range m.cars {
		if car.Location == location && car.IsAvailable {
			copied := *car
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *mockCarRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*models.Car
	for _, car := range m.cars {
		if car.IsAvailable && car.DeletedAt == nil {
			copied := *car
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}
