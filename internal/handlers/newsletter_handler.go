package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"gorent/internal/services"
	"gorent/internal/utils"
	"gorent/internal/validators"
)

type NewsletterHandler struct {
	newsletterService services.NewsletterService
}

func NewNewsletterHandler(newsletterService services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterService: newsletterService,
	}
}

type subscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// Subscribe records a storefront newsletter signup
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var request subscribeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.newsletterService.Subscribe(c.Request.Context(), request.Email); err != nil {
		var validationErrs validators.ValidationErrors
		if errors.As(err, &validationErrs) {
			utils.ValidationErrorResponse(c, validationErrs.Details())
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Subscribed successfully", nil)
}
