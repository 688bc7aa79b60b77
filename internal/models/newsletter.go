package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewsletterSubscription stores a captured email address. The system only
// records subscribers; sending is handled elsewhere.
type NewsletterSubscription struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
