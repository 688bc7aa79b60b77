package utils

import "time"

const (
	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Booking
	OperatingHoursMin = "08:00"
	OperatingHoursMax = "22:00"

	// File upload
	MaxImageSize  = 5 * 1024 * 1024 // 5MB
	CarImageWidth = 1280            // resize target for car photos
)

// HTTP status values for the response envelope
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error messages
const (
	ErrInternalServer    = "internal server error"
	ErrUnauthorized      = "unauthorized"
	ErrForbidden         = "forbidden"
	ErrValidationFailed  = "validation failed"
	ErrBookingInProgress = "another booking for this car and date range is in progress, please try again"
	ErrCarNotAvailable   = "car is not available for the selected dates"
	ErrDuplicateBooking  = "a booking for this car and date range already exists"
)

// Cache keys
const (
	CacheKeyCarPrefix = "car:"
	CacheCarTTL       = 10 * time.Minute
)
