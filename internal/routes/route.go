package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbooking/internal/container"
	"github.com/joshua-takyi/hotelbooking/internal/handlers"
	"github.com/joshua-takyi/hotelbooking/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.New()

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
	}
	if len(container.AllowedOrigins) == 0 || container.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = container.AllowedOrigins
	}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": "hotel-booking-api",
		})
	})

	r.POST("/hotels", handlers.CreateHotel(container.HotelService))
	r.GET("/hotels", handlers.ListHotels(container.HotelService))
	r.GET("/hotels/:id", handlers.GetHotel(container.HotelService))

	r.POST("/book", handlers.CreateBooking(container.BookingService))
	r.GET("/bookings", handlers.GetBooking(container.BookingService))
	r.PUT("/bookings/:id", handlers.UpdateBooking(container.BookingService))
	r.POST("/deletebooking", handlers.CancelBooking(container.BookingService))

	return r
}
