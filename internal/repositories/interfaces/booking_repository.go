package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gorent/internal/models"
	"gorent/internal/utils"
)

type BookingRepository interface {
	// Create persists a new booking. A write that collides with the unique
	// (user, car, pickup_date, return_date) index reports ErrDuplicate.
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)

	// HasOverlapping reports whether any pending or confirmed booking of the
	// car overlaps [pickupDate, returnDate).
	HasOverlapping(ctx context.Context, carID primitive.ObjectID, pickupDate, returnDate time.Time) (bool, error)

	// GetOverlappingCarIDs returns the cars with a pending or confirmed
	// booking overlapping the range, for filtering availability listings.
	GetOverlappingCarIDs(ctx context.Context, carIDs []primitive.ObjectID, pickupDate, returnDate time.Time) (map[primitive.ObjectID]bool, error)

	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error

	// Projections, newest-first
	GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)

	// Owner dashboard
	CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
	CountByOwnerAndStatus(ctx context.Context, ownerID primitive.ObjectID, status models.BookingStatus) (int64, error)
	GetRecentByOwner(ctx context.Context, ownerID primitive.ObjectID, limit int) ([]*models.Booking, error)
	RevenueByOwnerSince(ctx context.Context, ownerID primitive.ObjectID, since time.Time) (float64, error)
}
