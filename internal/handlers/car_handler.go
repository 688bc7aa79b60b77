package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gorent/internal/repositories/interfaces"
	"gorent/internal/services"
	"gorent/internal/utils"
)

type CarHandler struct {
	carService services.CarService
}

func NewCarHandler(carService services.CarService) *CarHandler {
	return &CarHandler{
		carService: carService,
	}
}

// ListCars returns the public catalog of available cars
func (h *CarHandler) ListCars(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	cars, total, err := h.carService.ListCars(c.Request.Context(), params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	utils.SuccessResponseWithMeta(c, "Cars retrieved successfully", map[string]interface{}{
		"cars": cars,
	}, meta)
}

// GetCar returns one car's public detail
func (h *CarHandler) GetCar(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID")
		return
	}

	car, err := h.carService.GetCar(c.Request.Context(), carID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Car")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Car retrieved successfully", car)
}
