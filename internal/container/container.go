package container

import (
	"log/slog"

	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/services"
)

// Repository is everything the services need from a storage backend.
type Repository interface {
	models.HotelRepo
	models.BookingRepo
}

// Container holds all application dependencies
type Container struct {
	Logger           *slog.Logger
	AllowedOrigins   []string
	HotelService     *services.HotelService
	InventoryService *services.InventoryService
	BookingService   *services.BookingService
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, repo Repository, cache services.HotelCache, allowedOrigins []string) *Container {
	inventoryService := services.NewInventoryService(repo, cache, logger)
	hotelService := services.NewHotelService(repo, cache)
	bookingService := services.NewBookingService(repo, inventoryService, logger)

	return &Container{
		Logger:           logger,
		AllowedOrigins:   allowedOrigins,
		HotelService:     hotelService,
		InventoryService: inventoryService,
		BookingService:   bookingService,
	}
}
