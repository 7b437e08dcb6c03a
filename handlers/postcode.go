package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"knead/services/geo"
	"knead/utils"
)

// PostcodeHandler exposes the service-area check.
type PostcodeHandler struct {
	Validator geo.Validator
	Logger    *zap.Logger
}

func NewPostcodeHandler(validator geo.Validator, logger *zap.Logger) *PostcodeHandler {
	return &PostcodeHandler{Validator: validator, Logger: logger}
}

// ValidatePostcode handles POST /api/postcode/validate. A postcode outside
// the service area is a successful response carrying alternatives, not an
// error; only a geocoding outage is surfaced as retryable.
func (h *PostcodeHandler) ValidatePostcode(c *gin.Context) {
	var input struct {
		Postcode string `json:"postcode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "postcode is required")
		return
	}

	result, err := h.Validator.Validate(c.Request.Context(), input.Postcode)
	if err != nil {
		if errors.Is(err, geo.ErrGeocodeUnavailable) {
			utils.JSONError(c, http.StatusServiceUnavailable,
				"postcode validation is temporarily unavailable, please try again")
			return
		}
		h.Logger.Error("postcode validation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}

	if !result.IsValid {
		utils.JSONError(c, http.StatusBadRequest, result.Message)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
