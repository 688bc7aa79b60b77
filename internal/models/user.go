package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStatus string
type UserType string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"

	UserTypeCustomer UserType = "customer"
	UserTypeOwner    UserType = "owner"
	UserTypeAdmin    UserType = "admin"
)

type User struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email           string             `json:"email" bson:"email" validate:"required,email"`
	Password        string             `json:"-" bson:"password"`
	Phone           string             `json:"phone" bson:"phone"`
	ProfilePicture  string             `json:"profile_picture" bson:"profile_picture"`
	UserType        UserType           `json:"user_type" bson:"user_type" default:"customer"`
	Status          UserStatus         `json:"status" bson:"status" default:"active"`
	IsEmailVerified bool               `json:"is_email_verified" bson:"is_email_verified" default:"false"`
	LastLoginAt     *time.Time         `json:"last_login_at" bson:"last_login_at"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

func (u *User) IsOwner() bool {
	return u.UserType == UserTypeOwner || u.UserType == UserTypeAdmin
}
