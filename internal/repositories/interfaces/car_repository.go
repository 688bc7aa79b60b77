package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gorent/internal/models"
	"gorent/internal/utils"
)

type CarRepository interface {
	Create(ctx context.Context, car *models.Car) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error)

	// SoftDelete clears the owner and forces is_available off while keeping
	// the record for booking history.
	SoftDelete(ctx context.Context, id primitive.ObjectID) error

	// Owner console
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Car, error)
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error
	CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error)

	// Storefront
	GetAvailableByLocation(ctx context.Context, location string) ([]*models.Car, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error)
}
