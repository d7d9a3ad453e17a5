package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/joshua-takyi/hotelbooking/internal/helpers"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HotelService struct {
	hotelsRepo models.HotelRepo
	cache      HotelCache
}

func NewHotelService(hotelsRepo models.HotelRepo, cache HotelCache) *HotelService {
	if cache == nil {
		cache = NoopHotelCache{}
	}
	return &HotelService{
		hotelsRepo: hotelsRepo,
		cache:      cache,
	}
}

func (hs *HotelService) CreateHotel(ctx context.Context, req models.CreateHotelRequest) (*models.Hotel, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if err := models.Validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}

	hotel := &models.Hotel{
		Name:           req.Name,
		Location:       req.Location,
		Rating:         req.Rating,
		AvailableRooms: *req.Rooms,
	}
	created, err := hs.hotelsRepo.CreateHotel(ctx, hotel)
	if err != nil {
		return nil, err
	}
	hs.cache.Invalidate(context.WithoutCancel(ctx))
	return created, nil
}

// ListHotels returns one page of hotels, filtered by exact location when given.
func (hs *HotelService) ListHotels(ctx context.Context, location string, page int) ([]*models.Hotel, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be a positive integer", models.ErrInvalidRequest)
	}
	cached, gen, ok := hs.cache.GetHotels(ctx, location, page)
	if ok {
		return cached, nil
	}

	hotels, err := hs.hotelsRepo.ListHotels(ctx, location, helpers.PageOffset(page), helpers.PageSize)
	if err != nil {
		return nil, err
	}
	hs.cache.SetHotels(ctx, gen, location, page, hotels)
	return hotels, nil
}

func (hs *HotelService) GetHotel(ctx context.Context, id string) (*models.Hotel, error) {
	hotelId, err := primitive.ObjectIDFromHex(helpers.StringTrim(id))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hotel ID", models.ErrInvalidRequest)
	}
	return hs.hotelsRepo.GetHotelByID(ctx, hotelId)
}
