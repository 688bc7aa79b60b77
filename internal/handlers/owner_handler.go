package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gorent/internal/repositories/interfaces"
	"gorent/internal/services"
	"gorent/internal/utils"
	"gorent/internal/validators"
)

type OwnerHandler struct {
	carService     services.CarService
	storageService services.StorageService
}

func NewOwnerHandler(carService services.CarService, storageService services.StorageService) *OwnerHandler {
	return &OwnerHandler{
		carService:     carService,
		storageService: storageService,
	}
}

// CreateCar lists a new car for the authenticated owner. The photo arrives as
// multipart form data alongside the car fields.
func (h *OwnerHandler) CreateCar(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request validators.CreateCarRequest
	if err := c.ShouldBind(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	var imageURL string
	fileHeader, err := c.FormFile("image")
	if err == nil {
		if fileHeader.Size > utils.MaxImageSize {
			utils.BadRequestResponse(c, "Image exceeds the 5MB limit")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			utils.BadRequestResponse(c, "Failed to read image: "+err.Error())
			return
		}
		defer file.Close()

		imageURL, err = h.storageService.UploadCarImage(c.Request.Context(), file, fileHeader.Filename)
		if err != nil {
			utils.InternalServerErrorResponse(c)
			return
		}
	}

	car, err := h.carService.CreateCar(c.Request.Context(), ownerID, &request, imageURL)
	if err != nil {
		var validationErrs validators.ValidationErrors
		if errors.As(err, &validationErrs) {
			utils.ValidationErrorResponse(c, validationErrs.Details())
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Car listed successfully", car)
}

// GetOwnerCars lists the authenticated owner's fleet
func (h *OwnerHandler) GetOwnerCars(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	cars, err := h.carService.GetOwnerCars(c.Request.Context(), ownerID)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Cars retrieved successfully", map[string]interface{}{
		"cars": cars,
	})
}

// ToggleAvailability flips whether a car shows up in availability searches
func (h *OwnerHandler) ToggleAvailability(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID")
		return
	}

	car, err := h.carService.ToggleAvailability(c.Request.Context(), carID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			utils.NotFoundResponse(c, "Car")
		case errors.Is(err, services.ErrNotCarOwner):
			utils.ForbiddenResponse(c)
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Car availability updated successfully", car)
}

// DeleteCar delists a car while keeping its booking history
func (h *OwnerHandler) DeleteCar(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID")
		return
	}

	if err := h.carService.DeleteCar(c.Request.Context(), carID, ownerID); err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			utils.NotFoundResponse(c, "Car")
		case errors.Is(err, services.ErrNotCarOwner):
			utils.ForbiddenResponse(c)
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Car deleted successfully", nil)
}

// GetDashboard returns the owner's management summary
func (h *OwnerHandler) GetDashboard(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.carService.GetOwnerDashboard(c.Request.Context(), ownerID)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Dashboard retrieved successfully", dashboard)
}
