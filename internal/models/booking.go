package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// RenterDetails is a point-in-time snapshot of the renter's identity and
// license captured when the booking is created. It is never re-joined to the
// User record, so later profile edits cannot rewrite booking history.
type RenterDetails struct {
	FullName      string    `json:"full_name" bson:"full_name" validate:"required,min=2,max=100"`
	Email         string    `json:"email" bson:"email" validate:"required,email"`
	Phone         string    `json:"phone" bson:"phone" validate:"required"`
	DateOfBirth   time.Time `json:"date_of_birth" bson:"date_of_birth" validate:"required"`
	LicenseNumber string    `json:"license_number" bson:"license_number" validate:"required"`
	LicenseExpiry time.Time `json:"license_expiry" bson:"license_expiry" validate:"required"`
}

// HandoverDetails records where and at what time of day (HH:MM) the car is
// picked up or returned.
type HandoverDetails struct {
	Address string `json:"address" bson:"address" validate:"required,min=5,max=255"`
	Time    string `json:"time" bson:"time" validate:"required"`
}

type BookingExtras struct {
	ExtraDriver bool `json:"extra_driver" bson:"extra_driver"`
}

type Booking struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Car           primitive.ObjectID `json:"car" bson:"car"`
	User          primitive.ObjectID `json:"user" bson:"user"`
	Owner         primitive.ObjectID `json:"owner" bson:"owner"`
	PickupDate    time.Time          `json:"pickup_date" bson:"pickup_date"`
	ReturnDate    time.Time          `json:"return_date" bson:"return_date"`
	Status        BookingStatus      `json:"status" bson:"status" default:"pending"`
	Price         float64            `json:"price" bson:"price"`
	UserDetails   RenterDetails      `json:"user_details" bson:"user_details"`
	PickupDetails HandoverDetails    `json:"pickup_details" bson:"pickup_details"`
	ReturnDetails HandoverDetails    `json:"return_details" bson:"return_details"`
	Extras        BookingExtras      `json:"extras" bson:"extras"`
	Notes         string             `json:"notes" bson:"notes"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// IsTerminal reports whether no further lifecycle transition is permitted.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCancelled || s == BookingStatusCompleted
}

// CanTransitionTo reports whether the owner-driven lifecycle permits moving
// from s to target. Only pending bookings may be approved or rejected.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if s != BookingStatusPending {
		return false
	}
	return target == BookingStatusConfirmed || target == BookingStatusCancelled
}

// CanBeCancelledByRenter reports whether the renter may still withdraw.
func (s BookingStatus) CanBeCancelledByRenter() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}
