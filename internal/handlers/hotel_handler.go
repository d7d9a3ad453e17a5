package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbooking/internal/helpers"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/services"
)

func CreateHotel(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateHotelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		hotel, err := h.CreateHotel(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, hotel)
	}
}

func ListHotels(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid page parameter"))
			return
		}
		location := helpers.StringTrim(c.Query("location"))

		hotels, err := h.ListHotels(c.Request.Context(), location, page)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, hotels)
	}
}

func GetHotel(h *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotel, err := h.GetHotel(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, hotel)
	}
}
