package services

import "errors"

// Service-level sentinels. Handlers branch on these to pick the HTTP status
// and error category; messages shown to clients come from utils constants.
var (
	// Conflict family — the request lost a race or repeats earlier work.
	// Lock contention is retryable by the client; the others are not.
	ErrBookingLocked    = errors.New("booking attempt in progress for this car and date range")
	ErrCarUnavailable   = errors.New("car is not available for the requested dates")
	ErrDuplicateBooking = errors.New("duplicate booking for this car and date range")

	// Lifecycle violations.
	ErrInvalidTransition = errors.New("booking status transition not permitted")

	// Authorization — acting user is not the relevant owner/renter.
	ErrNotBookingOwner  = errors.New("user does not own this booking's car")
	ErrNotBookingRenter = errors.New("user is not this booking's renter")
	ErrNotCarOwner      = errors.New("user does not own this car")
	ErrBookingForbidden = errors.New("user may not view this booking")
)
