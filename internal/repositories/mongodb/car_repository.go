package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/services"
	"gorent/internal/utils"
)

type carRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewCarRepository(db *mongo.Database, cache services.CacheService) interfaces.CarRepository {
	return &carRepository{
		collection: db.Collection("cars"),
		cache:      cache,
	}
}

func (r *carRepository) Create(ctx context.Context, car *models.Car) error {
	car.ID = primitive.NewObjectID()
	car.CreatedAt = time.Now()
	car.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, car)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}

	if car.IsAvailable {
		r.cacheCar(ctx, car)
	}

	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	if car := r.getCarFromCache(ctx, id.Hex()); car != nil {
		return car, nil
	}

	var car models.Car
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&car)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("car %s: %w", id.Hex(), interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	if car.IsAvailable {
		r.cacheCar(ctx, &car)
	}

	return &car, nil
}

func (r *carRepository) update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("car %s: %w", id.Hex(), interfaces.ErrNotFound)
	}

	r.invalidateCarCache(ctx, id.Hex())

	return nil
}

func (r *carRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"owner":        nil,
			"is_available": false,
			"deleted_at":   now,
			"updated_at":   now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("car %s: %w", id.Hex(), interfaces.ErrNotFound)
	}

	r.invalidateCarCache(ctx, id.Hex())

	return nil
}

func (r *carRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Car, error) {
	filter := bson.M{"owner": ownerID}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find cars by owner: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	for cursor.Next(ctx) {
		var car models.Car
		if err := cursor.Decode(&car); err != nil {
			return nil, fmt.Errorf("failed to decode car: %w", err)
		}
		cars = append(cars, &car)
	}

	return cars, nil
}

func (r *carRepository) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	return r.update(ctx, id, map[string]interface{}{"is_available": available})
}

func (r *carRepository) CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"owner": ownerID})
	if err != nil {
		return 0, fmt.Errorf("failed to count cars by owner: %w", err)
	}
	return count, nil
}

func (r *carRepository) GetAvailableByLocation(ctx context.Context, location string) ([]*models.Car, error) {
	filter := bson.M{
		"location":     location,
		"is_available": true,
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find cars by location: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	for cursor.Next(ctx) {
		var car models.Car
		if err := cursor.Decode(&car); err != nil {
			return nil, fmt.Errorf("failed to decode car: %w", err)
		}
		cars = append(cars, &car)
	}

	return cars, nil
}

func (r *carRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	filter := bson.M{"is_available": true, "deleted_at": nil}

	if searchFilter := params.GetSearchFilter([]string{"brand", "model", "location"}); len(searchFilter) > 0 {
		filter = bson.M{"$and": []bson.M{filter, searchFilter}}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cars: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cars: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	for cursor.Next(ctx) {
		var car models.Car
		if err := cursor.Decode(&car); err != nil {
			return nil, 0, fmt.Errorf("failed to decode car: %w", err)
		}
		cars = append(cars, &car)
	}

	return cars, total, nil
}

// Cache helpers

func (r *carRepository) cacheCar(ctx context.Context, car *models.Car) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, utils.CacheKeyCarPrefix+car.ID.Hex(), car, utils.CacheCarTTL)
}

func (r *carRepository) getCarFromCache(ctx context.Context, id string) *models.Car {
	if r.cache == nil {
		return nil
	}
	var car models.Car
	if err := r.cache.Get(ctx, utils.CacheKeyCarPrefix+id, &car); err != nil {
		return nil
	}
	return &car
}

func (r *carRepository) invalidateCarCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheKeyCarPrefix+id)
}
