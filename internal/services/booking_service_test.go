package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gorent/internal/locks"
	"gorent/internal/models"
	"gorent/internal/validators"
)

type bookingFixture struct {
	service     BookingService
	bookingRepo *mockBookingRepo
	carRepo     *mockCarRepo
	car         *models.Car
	ownerID     primitive.ObjectID
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	ownerID := primitive.NewObjectID()
	car := &models.Car{
		ID:          primitive.NewObjectID(),
		Owner:       &ownerID,
		Brand:       "Toyota",
		Model:       "Corolla",
		Year:        2022,
		Category:    models.CarCategorySedan,
		PricePerDay: 50,
		Location:    "Berlin",
		IsAvailable: true,
	}

	bookingRepo := &mockBookingRepo{}
	carRepo := newMockCarRepo(car)
	log := testLogger()
	availability := NewAvailabilityService(carRepo, bookingRepo, log)
	service := NewBookingService(bookingRepo, carRepo, availability, locks.NewTable(30*time.Second), nil, 30*time.Second, log)

	return &bookingFixture{
		service:     service,
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		car:         car,
		ownerID:     ownerID,
	}
}

func validRequest(carID primitive.ObjectID, pickup, ret time.Time) *validators.CreateBookingRequest {
	return &validators.CreateBookingRequest{
		Car:        carID.Hex(),
		PickupDate: pickup.Format(time.RFC3339),
		ReturnDate: ret.Format(time.RFC3339),
		UserDetails: validators.RenterDetailsRequest{
			FullName:      "Jane Renter",
			Email:         "jane@example.com",
			Phone:         "15551234567",
			DateOfBirth:   "1990-04-12",
			LicenseNumber: "D1234567",
			LicenseExpiry: "2033-01-01",
		},
		PickupDetails: validators.HandoverDetailsRequest{
			Address: "Main Street 1, Berlin",
			Time:    "10:00",
		},
		ReturnDetails: validators.HandoverDetailsRequest{
			Address: "Main Street 1, Berlin",
			Time:    "18:00",
		},
		Notes: "please have a child seat ready",
	}
}

func futureRange(days, length int) (time.Time, time.Time) {
	pickup := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, days)
	return pickup, pickup.AddDate(0, 0, length)
}

func TestCreateBookingSuccess(t *testing.T) {
	fixture := newBookingFixture(t)
	userID := primitive.NewObjectID()
	pickup, ret := futureRange(2, 5)

	booking, err := fixture.service.CreateBooking(context.Background(), userID, validRequest(fixture.car.ID, pickup, ret))
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if booking.Status != models.BookingStatusPending {
		t.Errorf("status = %s, want pending", booking.Status)
	}
	if booking.Price != 250 {
		t.Errorf("price = %v, want 250 (5 days at 50/day)", booking.Price)
	}
	if booking.Owner != fixture.ownerID {
		t.Error("booking did not snapshot the car owner")
	}
	if booking.UserDetails.FullName != "Jane Renter" {
		t.Error("renter details not snapshotted")
	}
}

func TestCreateBookingValidation(t *testing.T) {
	fixture := newBookingFixture(t)
	userID := primitive.NewObjectID()
	pickup, ret := futureRange(2, 5)

	tests := []struct {
		name   string
		mutate func(req *validators.CreateBookingRequest)
		field  string
	}{
		{
			name:   "return before pickup",
			mutate: func(req *validators.CreateBookingRequest) { req.PickupDate, req.ReturnDate = req.ReturnDate, req.PickupDate },
			field:  "return_date",
		},
		{
			name: "pickup in the past",
			mutate: func(req *validators.CreateBookingRequest) {
				req.PickupDate = "2020-01-01"
			},
			field: "pickup_date",
		},
		{
			name:   "pickup time outside operating hours",
			mutate: func(req *validators.CreateBookingRequest) { req.PickupDetails.Time = "06:30" },
			field:  "pickup_details.time",
		},
		{
			name:   "expired license",
			mutate: func(req *validators.CreateBookingRequest) { req.UserDetails.LicenseExpiry = "2020-01-01" },
			field:  "user_details.license_expiry",
		},
		{
			name:   "date of birth in the future",
			mutate: func(req *validators.CreateBookingRequest) { req.UserDetails.DateOfBirth = "2099-01-01" },
			field:  "user_details.date_of_birth",
		},
		{
			name:   "bad email",
			mutate: func(req *validators.CreateBookingRequest) { req.UserDetails.Email = "not-an-email" },
			field:  "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(fixture.car.ID, pickup, ret)
			tt.mutate(req)

			_, err := fixture.service.CreateBooking(context.Background(), userID, req)
			var validationErrs validators.ValidationErrors
			if !errors.As(err, &validationErrs) {
				t.Fatalf("expected validation errors, got %v", err)
			}

			found := false
			for _, fieldErr := range validationErrs {
				if fieldErr.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %q in %v", tt.field, validationErrs)
			}
		})
	}
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	fixture := newBookingFixture(t)
	pickup, ret := futureRange(2, 5)

	// First renter books and is confirmed.
	first, err := fixture.service.CreateBooking(context.Background(), primitive.NewObjectID(), validRequest(fixture.car.ID, pickup, ret))
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := fixture.service.ChangeStatus(context.Background(), first.ID, fixture.ownerID, models.BookingStatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	// A partially overlapping attempt must be rejected.
	overlapPickup := pickup.AddDate(0, 0, 3)
	overlapReturn := ret.AddDate(0, 0, 3)
	_, err = fixture.service.CreateBooking(context.Background(), primitive.NewObjectID(), validRequest(fixture.car.ID, overlapPickup, overlapReturn))
	if !errors.Is(err, ErrCarUnavailable) {
		t.Fatalf("overlapping booking: got %v, want ErrCarUnavailable", err)
	}

	// Once the blocking booking is cancelled, the range opens up again.
	if _, err := fixture.service.CancelBooking(context.Background(), first.ID, first.User); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := fixture.service.CreateBooking(context.Background(), primitive.NewObjectID(), validRequest(fixture.car.ID, overlapPickup, overlapReturn)); err != nil {
		t.Fatalf("range still blocked after cancellation: %v", err)
	}
}

func TestCreateBookingAfterCancellation(t *testing.T) {
	fixture := newBookingFixture(t)
	renterID := primitive.NewObjectID()
	pickup, ret := futureRange(2, 5)

	first, err := fixture.service.CreateBooking(context.Background(), renterID, validRequest(fixture.car.ID, pickup, ret))
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := fixture.service.CancelBooking(context.Background(), first.ID, renterID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	// The range is free again for another renter.
	_, err = fixture.service.CreateBooking(context.Background(), primitive.NewObjectID(), validRequest(fixture.car.ID, pickup, ret))
	if err != nil {
		t.Fatalf("rebooking a cancelled range failed: %v", err)
	}
}

func TestCreateBookingDuplicateTuple(t *testing.T) {
	fixture := newBookingFixture(t)
	renterID := primitive.NewObjectID()
	pickup, ret := futureRange(2, 5)

	first, err := fixture.service.CreateBooking(context.Background(), renterID, validRequest(fixture.car.ID, pickup, ret))
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := fixture.service.CancelBooking(context.Background(), first.ID, renterID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	// The cancelled row no longer blocks availability, but the unique
	// (user, car, pickup, return) constraint still rejects an identical
	// resubmission by the same renter.
	_, err = fixture.service.CreateBooking(context.Background(), renterID, validRequest(fixture.car.ID, pickup, ret))
	if !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("duplicate submission: got %v, want ErrDuplicateBooking", err)
	}
}

func TestCreateBookingCarSwitchedOff(t *testing.T) {
	fixture := newBookingFixture(t)
	fixture.car.IsAvailable = false
	pickup, ret := futureRange(2, 5)

	_, err := fixture.service.CreateBooking(context.Background(), primitive.NewObjectID(), validRequest(fixture.car.ID, pickup, ret))
	if !errors.Is(err, ErrCarUnavailable) {
		t.Fatalf("got %v, want ErrCarUnavailable", err)
	}
}

func TestCreateBookingConcurrentSameRange(t *testing.T) {
	fixture := newBookingFixture(t)
	fixture.bookingRepo.createDelay = 50 * time.Millisecond
	pickup, ret := futureRange(2, 5)

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := fixture.service.CreateBooking(context.Background(), primitive.NewObjectID(), validRequest(fixture.car.ID, pickup, ret))
			results[i] = err
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrBookingLocked), errors.Is(err, ErrCarUnavailable), errors.Is(err, ErrDuplicateBooking):
			// Losers get a conflict-family error.
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}
	if count := fixture.bookingRepo.nonCancelledCount(fixture.car.ID); count != 1 {
		t.Errorf("non-cancelled bookings = %d, want 1", count)
	}
}

func TestChangeStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    models.BookingStatus
		to      models.BookingStatus
		wantErr error
	}{
		{name: "pending to confirmed", from: models.BookingStatusPending, to: models.BookingStatusConfirmed},
		{name: "pending to cancelled", from: models.BookingStatusPending, to: models.BookingStatusCancelled},
		{name: "confirmed is terminal", from: models.BookingStatusConfirmed, to: models.BookingStatusCancelled, wantErr: ErrInvalidTransition},
		{name: "cancelled is terminal", from: models.BookingStatusCancelled, to: models.BookingStatusConfirmed, wantErr: ErrInvalidTransition},
		{name: "completed is terminal", from: models.BookingStatusCompleted, to: models.BookingStatusConfirmed, wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newBookingFixture(t)
			pickup, ret := futureRange(2, 5)

			booking, err := fixture.service.CreateBooking(context.Background(), primitive.NewObjectID(), validRequest(fixture.car.ID, pickup, ret))
			if err != nil {
				t.Fatalf("setup booking failed: %v", err)
			}
			if tt.from != models.BookingStatusPending {
				if err := fixture.bookingRepo.UpdateStatus(context.Background(), booking.ID, tt.from); err != nil {
					t.Fatalf("setup status failed: %v", err)
				}
			}

			_, err = fixture.service.ChangeStatus(context.Background(), booking.ID, fixture.ownerID, tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ChangeStatus(%s→%s) = %v, want %v", tt.from, tt.to, err, tt.wantErr)
			}

			stored, _ := fixture.bookingRepo.GetByID(context.Background(), booking.ID)
			if tt.wantErr != nil && stored.Status != tt.from {
				t.Errorf("rejected transition mutated status to %s", stored.Status)
			}
			if tt.wantErr == nil && stored.Status != tt.to {
				t.Errorf("status = %s, want %s", stored.Status, tt.to)
			}
		})
	}
}

func TestChangeStatusAuthorization(t *testing.T) {
	fixture := newBookingFixture(t)
	pickup, ret := futureRange(2, 5)

	booking, err := fixture.service.CreateBooking(context.Background(), primitive.NewObjectID(), validRequest(fixture.car.ID, pickup, ret))
	if err != nil {
		t.Fatalf("setup booking failed: %v", err)
	}

	_, err = fixture.service.ChangeStatus(context.Background(), booking.ID, primitive.NewObjectID(), models.BookingStatusConfirmed)
	if !errors.Is(err, ErrNotBookingOwner) {
		t.Fatalf("got %v, want ErrNotBookingOwner", err)
	}

	stored, _ := fixture.bookingRepo.GetByID(context.Background(), booking.ID)
	if stored.Status != models.BookingStatusPending {
		t.Error("unauthorized attempt mutated the booking")
	}
}

func TestCancelBooking(t *testing.T) {
	fixture := newBookingFixture(t)
	renterID := primitive.NewObjectID()
	pickup, ret := futureRange(2, 5)

	booking, err := fixture.service.CreateBooking(context.Background(), renterID, validRequest(fixture.car.ID, pickup, ret))
	if err != nil {
		t.Fatalf("setup booking failed: %v", err)
	}

	if _, err := fixture.service.CancelBooking(context.Background(), booking.ID, primitive.NewObjectID()); !errors.Is(err, ErrNotBookingRenter) {
		t.Fatalf("stranger cancel: got %v, want ErrNotBookingRenter", err)
	}

	cancelled, err := fixture.service.CancelBooking(context.Background(), booking.ID, renterID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != models.BookingStatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}

	if _, err := fixture.service.CancelBooking(context.Background(), booking.ID, renterID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("double cancel: got %v, want ErrInvalidTransition", err)
	}
}

func TestGetBookingAuthorization(t *testing.T) {
	fixture := newBookingFixture(t)
	renterID := primitive.NewObjectID()
	pickup, ret := futureRange(2, 5)

	booking, err := fixture.service.CreateBooking(context.Background(), renterID, validRequest(fixture.car.ID, pickup, ret))
	if err != nil {
		t.Fatalf("setup booking failed: %v", err)
	}

	if _, err := fixture.service.GetBooking(context.Background(), booking.ID, renterID); err != nil {
		t.Errorf("renter read failed: %v", err)
	}
	if _, err := fixture.service.GetBooking(context.Background(), booking.ID, fixture.ownerID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	if _, err := fixture.service.GetBooking(context.Background(), booking.ID, primitive.NewObjectID()); !errors.Is(err, ErrBookingForbidden) {
		t.Errorf("stranger read: got %v, want ErrBookingForbidden", err)
	}
}
