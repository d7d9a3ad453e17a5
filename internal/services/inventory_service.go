package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshua-takyi/hotelbooking/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryService owns the per-hotel room ledger.
type InventoryService struct {
	hotels models.HotelRepo
	cache  HotelCache
	logger *slog.Logger
}

func NewInventoryService(hotels models.HotelRepo, cache HotelCache, logger *slog.Logger) *InventoryService {
	if cache == nil {
		cache = NoopHotelCache{}
	}
	return &InventoryService{
		hotels: hotels,
		cache:  cache,
		logger: logger,
	}
}

// Reserve takes count rooms from the hotel and returns what is left.
// It fails with ErrHotelNotFound or ErrNoRoomsAvailable without touching the ledger.
func (is *InventoryService) Reserve(ctx context.Context, hotelId primitive.ObjectID, count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("%w: rooms must be positive", models.ErrInvalidRequest)
	}
	hotel, err := is.hotels.ReserveRooms(ctx, hotelId, count)
	if err != nil {
		return 0, err
	}
	is.cache.Invalidate(context.WithoutCancel(ctx))
	is.logger.Info("rooms reserved", "hotel_id", hotelId.Hex(), "rooms", count, "remaining", hotel.AvailableRooms)
	return hotel.AvailableRooms, nil
}

func (is *InventoryService) Release(ctx context.Context, hotelId primitive.ObjectID, count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("%w: rooms must be positive", models.ErrInvalidRequest)
	}
	hotel, err := is.hotels.ReleaseRooms(ctx, hotelId, count)
	if err != nil {
		return 0, err
	}
	is.cache.Invalidate(context.WithoutCancel(ctx))
	is.logger.Info("rooms released", "hotel_id", hotelId.Hex(), "rooms", count, "remaining", hotel.AvailableRooms)
	return hotel.AvailableRooms, nil
}
