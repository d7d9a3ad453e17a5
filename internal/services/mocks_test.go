package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testNow = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockHotelRepo struct {
	mock.Mock
}

func (m *MockHotelRepo) CreateHotel(ctx context.Context, hotel *models.Hotel) (*models.Hotel, error) {
	args := m.Called(ctx, hotel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hotel), args.Error(1)
}

func (m *MockHotelRepo) GetHotelByID(ctx context.Context, id primitive.ObjectID) (*models.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hotel), args.Error(1)
}

func (m *MockHotelRepo) ListHotels(ctx context.Context, location string, offset, limit int) ([]*models.Hotel, error) {
	args := m.Called(ctx, location, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Hotel), args.Error(1)
}

func (m *MockHotelRepo) ReserveRooms(ctx context.Context, id primitive.ObjectID, count int) (*models.Hotel, error) {
	args := m.Called(ctx, id, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hotel), args.Error(1)
}

func (m *MockHotelRepo) ReleaseRooms(ctx context.Context, id primitive.ObjectID, count int) (*models.Hotel, error) {
	args := m.Called(ctx, id, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hotel), args.Error(1)
}

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetBookingByUser(ctx context.Context, userId string) (*models.Booking, error) {
	args := m.Called(ctx, userId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdateBookingDates(ctx context.Context, userId string, checkIn, checkOut time.Time) (*models.Booking, error) {
	args := m.Called(ctx, userId, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepo) DeleteBookingByUser(ctx context.Context, userId string) (*models.Booking, error) {
	args := m.Called(ctx, userId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

// recordingCache is an in-process HotelCache that counts invalidations.
type recordingCache struct {
	pages         map[string][]*models.Hotel
	invalidations int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{pages: make(map[string][]*models.Hotel)}
}

func (c *recordingCache) GetHotels(_ context.Context, location string, page int) ([]*models.Hotel, int64, bool) {
	gen := int64(c.invalidations)
	h, ok := c.pages[hotelPageKey(gen, location, page)]
	return h, gen, ok
}

func (c *recordingCache) SetHotels(_ context.Context, gen int64, location string, page int, hotels []*models.Hotel) {
	c.pages[hotelPageKey(gen, location, page)] = hotels
}

func (c *recordingCache) Invalidate(context.Context) {
	c.invalidations++
}
