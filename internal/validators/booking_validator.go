package validators

import (
	"time"

	"gorent/internal/utils"
)

type CheckAvailabilityRequest struct {
	Location   string `json:"location" validate:"required,min=2,max=100"`
	PickupDate string `json:"pickup_date" validate:"required"`
	ReturnDate string `json:"return_date" validate:"required"`
}

type RenterDetailsRequest struct {
	FullName      string `json:"full_name" validate:"required,min=2,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,min=7,max=20"`
	DateOfBirth   string `json:"date_of_birth" validate:"required"`
	LicenseNumber string `json:"license_number" validate:"required,min=4,max=30"`
	LicenseExpiry string `json:"license_expiry" validate:"required"`
}

type HandoverDetailsRequest struct {
	Address string `json:"address" validate:"required,min=5,max=255"`
	Time    string `json:"time" validate:"required,hhmm_time"`
}

type BookingExtrasRequest struct {
	ExtraDriver bool `json:"extra_driver"`
}

type CreateBookingRequest struct {
	Car           string                 `json:"car" validate:"required,object_id"`
	PickupDate    string                 `json:"pickup_date" validate:"required"`
	ReturnDate    string                 `json:"return_date" validate:"required"`
	UserDetails   RenterDetailsRequest   `json:"user_details" validate:"required"`
	PickupDetails HandoverDetailsRequest `json:"pickup_details" validate:"required"`
	ReturnDetails HandoverDetailsRequest `json:"return_details" validate:"required"`
	Extras        BookingExtrasRequest   `json:"extras"`
	Notes         string                 `json:"notes" validate:"omitempty,max=1000"`
}

type ChangeBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled"`
}

// BookingDates carries the parsed, normalized timestamps out of validation so
// downstream code never re-parses the request strings.
type BookingDates struct {
	Pickup        time.Time
	Return        time.Time
	DateOfBirth   time.Time
	LicenseExpiry time.Time
}

// ValidateDateRange parses and orders a pickup/return pair. Used by the
// availability check, which has no other fields to validate.
func ValidateDateRange(pickupStr, returnStr string) (pickup, ret time.Time, errs ValidationErrors) {
	var err error
	pickup, err = utils.ParseDate(pickupStr)
	if err != nil {
		errs = append(errs, ValidationError{Field: "pickup_date", Message: err.Error()})
	}
	ret, err = utils.ParseDate(returnStr)
	if err != nil {
		errs = append(errs, ValidationError{Field: "return_date", Message: err.Error()})
	}
	if len(errs) > 0 {
		return
	}
	if !ret.After(pickup) {
		errs = append(errs, ValidationError{
			Field:   "return_date",
			Message: "return date must be after pickup date",
		})
	}
	return
}

// ValidateCreateBooking runs struct-tag validation plus the cross-field rules
// the tags cannot express: date ordering, no past pickups, handover times
// inside operating hours, license valid beyond the rental, renter of age.
func ValidateCreateBooking(req *CreateBookingRequest) (*BookingDates, ValidationErrors) {
	errs := ValidateStruct(req)

	pickup, ret, dateErrs := ValidateDateRange(req.PickupDate, req.ReturnDate)
	errs = append(errs, dateErrs...)

	if len(dateErrs) == 0 && pickup.Before(utils.StartOfDay(time.Now().UTC())) {
		errs = append(errs, ValidationError{
			Field:   "pickup_date",
			Message: "pickup date cannot be in the past",
		})
	}

	dates := &BookingDates{Pickup: pickup, Return: ret}

	if req.PickupDetails.Time != "" && !utils.WithinOperatingHours(req.PickupDetails.Time) {
		errs = append(errs, ValidationError{
			Field:   "pickup_details.time",
			Message: "pickup time must be between 08:00 and 22:00",
		})
	}
	if req.ReturnDetails.Time != "" && !utils.WithinOperatingHours(req.ReturnDetails.Time) {
		errs = append(errs, ValidationError{
			Field:   "return_details.time",
			Message: "return time must be between 08:00 and 22:00",
		})
	}

	if req.UserDetails.DateOfBirth != "" {
		dob, err := utils.ParseDate(req.UserDetails.DateOfBirth)
		switch {
		case err != nil:
			errs = append(errs, ValidationError{Field: "user_details.date_of_birth", Message: err.Error()})
		case !dob.Before(time.Now()):
			errs = append(errs, ValidationError{
				Field:   "user_details.date_of_birth",
				Message: "date of birth must be in the past",
			})
		default:
			dates.DateOfBirth = dob
		}
	}

	if req.UserDetails.LicenseExpiry != "" {
		expiry, err := utils.ParseDate(req.UserDetails.LicenseExpiry)
		switch {
		case err != nil:
			errs = append(errs, ValidationError{Field: "user_details.license_expiry", Message: err.Error()})
		case !expiry.After(time.Now()):
			errs = append(errs, ValidationError{
				Field:   "user_details.license_expiry",
				Message: "driver's license has expired",
			})
		default:
			dates.LicenseExpiry = expiry
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return dates, nil
}
