package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gorent/internal/models"
	"gorent/internal/repositories/interfaces"
	"gorent/internal/services"
	"gorent/internal/utils"
	"gorent/internal/validators"
)

type BookingHandler struct {
	bookingService      services.BookingService
	availabilityService services.AvailabilityService
}

func NewBookingHandler(bookingService services.BookingService, availabilityService services.AvailabilityService) *BookingHandler {
	return &BookingHandler{
		bookingService:      bookingService,
		availabilityService: availabilityService,
	}
}

// CheckAvailability returns the cars free at a location for a date range
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var request validators.CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); errs != nil {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	pickup, ret, errs := validators.ValidateDateRange(request.PickupDate, request.ReturnDate)
	if errs != nil {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	cars, err := h.availabilityService.CheckAvailability(c.Request.Context(), request.Location, pickup, ret)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Availability retrieved successfully", map[string]interface{}{
		"available_cars": cars,
	})
}

// CreateBooking creates a pending booking with full renter and handover details
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request validators.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), userID, &request)
	if err != nil {
		var validationErrs validators.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			utils.ValidationErrorResponse(c, validationErrs.Details())
		case errors.Is(err, services.ErrBookingLocked):
			utils.ConflictResponse(c, utils.ErrBookingInProgress)
		case errors.Is(err, services.ErrCarUnavailable):
			utils.ConflictResponse(c, utils.ErrCarNotAvailable)
		case errors.Is(err, services.ErrDuplicateBooking):
			utils.ConflictResponse(c, utils.ErrDuplicateBooking)
		case errors.Is(err, interfaces.ErrNotFound):
			utils.NotFoundResponse(c, "Car")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.CreatedResponse(c, "Booking created successfully", booking)
}

// GetBooking retrieves one booking for its renter or owner
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			utils.NotFoundResponse(c, "Booking")
		case errors.Is(err, services.ErrBookingForbidden):
			utils.ForbiddenResponse(c)
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Booking retrieved successfully", booking)
}

// GetUserBookings lists the authenticated renter's bookings
func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.GetUserBookings(c.Request.Context(), userID, params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved successfully", map[string]interface{}{
		"bookings": bookings,
	}, meta)
}

// GetOwnerBookings lists bookings against the authenticated owner's cars
func (h *BookingHandler) GetOwnerBookings(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.GetOwnerBookings(c.Request.Context(), ownerID, params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved successfully", map[string]interface{}{
		"bookings": bookings,
	}, meta)
}

// CancelBooking lets the renter withdraw a pending or confirmed booking
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			utils.NotFoundResponse(c, "Booking")
		case errors.Is(err, services.ErrNotBookingRenter):
			utils.ForbiddenResponse(c)
		case errors.Is(err, services.ErrInvalidTransition):
			utils.ConflictResponse(c, "booking can no longer be cancelled")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Booking cancelled successfully", booking)
}

// ChangeStatus is the owner's approve or reject decision on a pending booking
func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var request validators.ChangeBookingStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); errs != nil {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	booking, err := h.bookingService.ChangeStatus(c.Request.Context(), bookingID, ownerID, models.BookingStatus(request.Status))
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			utils.NotFoundResponse(c, "Booking")
		case errors.Is(err, services.ErrNotBookingOwner):
			utils.ForbiddenResponse(c)
		case errors.Is(err, services.ErrInvalidTransition):
			utils.ConflictResponse(c, "booking is not pending")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Booking status updated successfully", booking)
}

// currentUserID pulls the authenticated user out of the context set by the
// auth middleware, writing the error response itself when it is missing.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	objectID, ok := userID.(primitive.ObjectID)
	if !ok {
		utils.BadRequestResponse(c, "Invalid user ID")
		return primitive.NilObjectID, false
	}

	return objectID, true
}
