package validators

import (
	"testing"
	"time"
)

func baseRequest() *CreateBookingRequest {
	pickup := time.Now().UTC().AddDate(0, 0, 7)
	return &CreateBookingRequest{
		Car:        "65b2f1c9e4b0a1d2c3f4e5a6",
		PickupDate: pickup.Format(time.RFC3339),
		ReturnDate: pickup.AddDate(0, 0, 3).Format(time.RFC3339),
		UserDetails: RenterDetailsRequest{
			FullName:      "Max Mustermann",
			Email:         "max@example.com",
			Phone:         "491701234567",
			DateOfBirth:   "1985-07-20",
			LicenseNumber: "B123456789",
			LicenseExpiry: "2032-12-31",
		},
		PickupDetails: HandoverDetailsRequest{
			Address: "Airport Terminal 1, Frankfurt",
			Time:    "09:30",
		},
		ReturnDetails: HandoverDetailsRequest{
			Address: "Airport Terminal 1, Frankfurt",
			Time:    "17:00",
		},
	}
}

func TestValidateCreateBookingValid(t *testing.T) {
	dates, errs := ValidateCreateBooking(baseRequest())
	if errs != nil {
		t.Fatalf("valid request rejected: %v", errs)
	}
	if !dates.Return.After(dates.Pickup) {
		t.Error("parsed dates out of order")
	}
	if dates.LicenseExpiry.IsZero() || dates.DateOfBirth.IsZero() {
		t.Error("renter dates were not parsed")
	}
}

func TestValidateCreateBookingErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *CreateBookingRequest)
		field  string
	}{
		{
			name:   "missing car",
			mutate: func(req *CreateBookingRequest) { req.Car = "" },
			field:  "car",
		},
		{
			name:   "malformed car id",
			mutate: func(req *CreateBookingRequest) { req.Car = "not-hex" },
			field:  "car",
		},
		{
			name:   "unparseable pickup date",
			mutate: func(req *CreateBookingRequest) { req.PickupDate = "tomorrow" },
			field:  "pickup_date",
		},
		{
			name: "return equals pickup",
			mutate: func(req *CreateBookingRequest) {
				req.ReturnDate = req.PickupDate
			},
			field: "return_date",
		},
		{
			name:   "pickup in the past",
			mutate: func(req *CreateBookingRequest) { req.PickupDate = "2019-05-01" },
			field:  "pickup_date",
		},
		{
			name:   "pickup before opening",
			mutate: func(req *CreateBookingRequest) { req.PickupDetails.Time = "07:59" },
			field:  "pickup_details.time",
		},
		{
			name:   "return after closing",
			mutate: func(req *CreateBookingRequest) { req.ReturnDetails.Time = "22:01" },
			field:  "return_details.time",
		},
		{
			name:   "malformed handover time",
			mutate: func(req *CreateBookingRequest) { req.PickupDetails.Time = "9am" },
			field:  "time",
		},
		{
			name:   "expired license",
			mutate: func(req *CreateBookingRequest) { req.UserDetails.LicenseExpiry = "2021-01-01" },
			field:  "user_details.license_expiry",
		},
		{
			name:   "future date of birth",
			mutate: func(req *CreateBookingRequest) { req.UserDetails.DateOfBirth = "2090-01-01" },
			field:  "user_details.date_of_birth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(req)

			_, errs := ValidateCreateBooking(req)
			if errs == nil {
				t.Fatal("expected validation errors")
			}

			for _, err := range errs {
				if err.Field == tt.field {
					return
				}
			}
			t.Errorf("no error for field %q, got %v", tt.field, errs)
		})
	}
}

func TestOperatingHoursBoundaries(t *testing.T) {
	// Both boundaries are inclusive.
	for _, hhmm := range []string{"08:00", "22:00", "12:34"} {
		req := baseRequest()
		req.PickupDetails.Time = hhmm
		if _, errs := ValidateCreateBooking(req); errs != nil {
			t.Errorf("time %s rejected: %v", hhmm, errs)
		}
	}
}

func TestValidateDateRange(t *testing.T) {
	pickup, ret, errs := ValidateDateRange("2027-03-01", "2027-03-05")
	if errs != nil {
		t.Fatalf("valid range rejected: %v", errs)
	}
	if ret.Sub(pickup) != 4*24*time.Hour {
		t.Errorf("parsed range = %v, want 4 days", ret.Sub(pickup))
	}

	if _, _, errs := ValidateDateRange("2027-03-05", "2027-03-01"); errs == nil {
		t.Error("inverted range accepted")
	}
	if _, _, errs := ValidateDateRange("garbage", "2027-03-01"); errs == nil {
		t.Error("unparseable pickup accepted")
	}
}
