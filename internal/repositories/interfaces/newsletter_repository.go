package interfaces

import (
	"context"

	"gorent/internal/models"
)

type NewsletterRepository interface {
	// Subscribe stores an email address; an already-subscribed address
	// reports ErrDuplicate via the unique email index.
	Subscribe(ctx context.Context, subscription *models.NewsletterSubscription) error
}
