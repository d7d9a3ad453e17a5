package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/services"
)

const (
	noRoomsMessage   = "No rooms available"
	cancelledMessage = "Your booking has been cancelled"
)

func CreateBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Missing required fields"))
			return
		}
		req.UserID = c.Query("userId")

		booking, err := b.CreateBooking(c.Request.Context(), req)
		if errors.Is(err, models.ErrNoRoomsAvailable) {
			// A sold-out hotel is an outcome, not a failure.
			c.JSON(http.StatusOK, noRoomsMessage)
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, booking)
	}
}

func GetBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, err := b.GetBookingForUser(c.Request.Context(), c.Query("userId"))
		if errors.Is(err, models.ErrBookingNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

// UpdateBooking changes the stay dates. The :id path segment is the user ID.
func UpdateBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UpdateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("Missing required fields"))
			return
		}

		booking, err := b.UpdateBookingDates(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	}
}

func CancelBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := b.CancelBooking(c.Request.Context(), c.Query("id")); err != nil {
			respondError(c, err)
			return
		}
		c.String(http.StatusCreated, cancelledMessage)
	}
}
