package services

import (
	"context"
	"errors"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/utils"
	"gorent/internal/validators"
	"gorent/pkg/logger"
)

type NewsletterService interface {
	// Subscribe records an email address. Re-subscribing the same address
	// is treated as success so the storefront form stays idempotent.
	Subscribe(ctx context.Context, email string) error
}

type newsletterService struct {
	newsletterRepo interfaces.NewsletterRepository
	logger         *logger.Logger
}

func NewNewsletterService(newsletterRepo interfaces.NewsletterRepository, log *logger.Logger) NewsletterService {
	return &newsletterService{
		newsletterRepo: newsletterRepo,
		logger:         log,
	}
}

func (s *newsletterService) Subscribe(ctx context.Context, email string) error {
	if !utils.IsValidEmail(email) {
		return validators.ValidationErrors{{Field: "email", Message: "must be a valid email address"}}
	}

	err := s.newsletterRepo.Subscribe(ctx, &models.NewsletterSubscription{Email: email})
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil
		}
		return err
	}

	s.logger.WithField("email", email).Info("Newsletter subscription added")

	return nil
}
