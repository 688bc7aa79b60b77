package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
)

type newsletterRepository struct {
	collection *mongo.Collection
}

func NewNewsletterRepository(db *mongo.Database) interfaces.NewsletterRepository {
	return &newsletterRepository{
		collection: db.Collection("newsletter_subscriptions"),
	}
}

func (r *newsletterRepository) Subscribe(ctx context.Context, subscription *models.NewsletterSubscription) error {
	subscription.ID = primitive.NewObjectID()
	subscription.CreatedAt = time.Now()
	subscription.Email = strings.ToLower(strings.TrimSpace(subscription.Email))

	_, err := r.collection.InsertOne(ctx, subscription)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("email already subscribed: %w", interfaces.ErrDuplicate)
		}
		return fmt.Errorf("failed to subscribe email: %w", err)
	}

	return nil
}
