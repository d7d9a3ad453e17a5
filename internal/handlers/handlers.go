package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbooking/internal/models"
)

// respondError maps domain errors to status codes. Anything unrecognised is a
// store failure and is left for the ErrorHandler middleware.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidRequest), errors.Is(err, models.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrHotelNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse("Hotel not found"))
	case errors.Is(err, models.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse("Booking not found"))
	case errors.Is(err, models.ErrBookingExists):
		c.JSON(http.StatusConflict, models.ErrorResponse(err.Error()))
	default:
		_ = c.Error(err)
	}
}
