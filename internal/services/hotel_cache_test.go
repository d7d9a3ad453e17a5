package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRedisCache(t *testing.T) (*RedisHotelCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisHotelCache(client, time.Minute, discardLogger()), mr
}

func TestRedisHotelCache_RoundTripAndInvalidate(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	ctx := context.Background()

	_, gen, ok := cache.GetHotels(ctx, "X", 1)
	assert.False(t, ok)
	assert.Equal(t, int64(0), gen)

	cache.SetHotels(ctx, gen, "X", 1, []*models.Hotel{{Name: "Ibis", Location: "X", AvailableRooms: 160}})
	hotels, _, ok := cache.GetHotels(ctx, "X", 1)
	require.True(t, ok)
	require.Len(t, hotels, 1)
	assert.Equal(t, 160, hotels[0].AvailableRooms)

	_, _, ok = cache.GetHotels(ctx, "X", 2)
	assert.False(t, ok)
	_, _, ok = cache.GetHotels(ctx, "Y", 1)
	assert.False(t, ok)

	cache.Invalidate(ctx)
	_, gen, ok = cache.GetHotels(ctx, "X", 1)
	assert.False(t, ok)
	assert.Equal(t, int64(1), gen)
}

func TestRedisHotelCache_WriteUnderRetiredGenerationIsNeverServed(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	ctx := context.Background()

	_, gen, ok := cache.GetHotels(ctx, "", 1)
	require.False(t, ok)

	cache.Invalidate(ctx)
	cache.SetHotels(ctx, gen, "", 1, []*models.Hotel{{Name: "Ibis", AvailableRooms: 180}})

	_, _, ok = cache.GetHotels(ctx, "", 1)
	assert.False(t, ok)
}

func TestRedisHotelCache_EntriesExpire(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()

	cache.SetHotels(ctx, 0, "X", 1, []*models.Hotel{{Name: "Ibis"}})
	_, _, ok := cache.GetHotels(ctx, "X", 1)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)
	_, _, ok = cache.GetHotels(ctx, "X", 1)
	assert.False(t, ok)
}

func TestRedisHotelCache_DegradesToMiss(t *testing.T) {
	t.Run("corrupt entry", func(t *testing.T) {
		cache, mr := newTestRedisCache(t)
		require.NoError(t, mr.Set(hotelPageKey(0, "X", 1), "{not json"))
		_, _, ok := cache.GetHotels(context.Background(), "X", 1)
		assert.False(t, ok)
	})

	t.Run("unreadable generation", func(t *testing.T) {
		cache, mr := newTestRedisCache(t)
		require.NoError(t, mr.Set(hotelCacheGenKey, "abc"))
		_, gen, ok := cache.GetHotels(context.Background(), "X", 1)
		assert.False(t, ok)
		assert.Equal(t, noGeneration, gen)

		cache.SetHotels(context.Background(), gen, "X", 1, []*models.Hotel{{Name: "Ibis"}})
		assert.Equal(t, []string{hotelCacheGenKey}, mr.Keys())
	})

	t.Run("redis down", func(t *testing.T) {
		cache, mr := newTestRedisCache(t)
		mr.Close()
		_, _, ok := cache.GetHotels(context.Background(), "X", 1)
		assert.False(t, ok)
		cache.SetHotels(context.Background(), 0, "X", 1, nil)
		cache.Invalidate(context.Background())
	})
}

// bookingDuringListRepo lets a reservation land after the listing has been
// read from the store but before the page reaches the cache.
type bookingDuringListRepo struct {
	*models.MemoryRepo
	inventory *InventoryService
	hotelId   primitive.ObjectID
	once      sync.Once
}

func (r *bookingDuringListRepo) ListHotels(ctx context.Context, location string, offset, limit int) ([]*models.Hotel, error) {
	hotels, err := r.MemoryRepo.ListHotels(ctx, location, offset, limit)
	if err != nil {
		return nil, err
	}
	var reserveErr error
	r.once.Do(func() {
		_, reserveErr = r.inventory.Reserve(ctx, r.hotelId, 20)
	})
	return hotels, reserveErr
}

func TestListHotels_LedgerMoveDuringListingDoesNotPinStalePage(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	ctx := context.Background()

	mem := models.NewMemoryRepo()
	hotel, err := mem.CreateHotel(ctx, &models.Hotel{Name: "Ibis", Location: "X", AvailableRooms: 180})
	require.NoError(t, err)

	repo := &bookingDuringListRepo{MemoryRepo: mem, hotelId: hotel.ID}
	repo.inventory = NewInventoryService(repo, cache, discardLogger())
	svc := NewHotelService(repo, cache)

	first, err := svc.ListHotels(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 180, first[0].AvailableRooms)

	ledger, err := mem.GetHotelByID(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, 160, ledger.AvailableRooms)

	second, err := svc.ListHotels(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 160, second[0].AvailableRooms)

	third, err := svc.ListHotels(ctx, "", 1)
	require.NoError(t, err)
	assert.Equal(t, 160, third[0].AvailableRooms)
}

func TestInventory_InvalidatesEvenWhenRequestIsCancelled(t *testing.T) {
	cache, _ := newTestRedisCache(t)
	mem := models.NewMemoryRepo()
	hotel, err := mem.CreateHotel(context.Background(), &models.Hotel{Name: "Ibis", Location: "X", AvailableRooms: 5})
	require.NoError(t, err)

	_, gen, _ := cache.GetHotels(context.Background(), "", 1)
	cache.SetHotels(context.Background(), gen, "", 1, []*models.Hotel{hotel})

	// The memory repo ignores ctx, so the reserve lands but the ctx is dead
	// by the time the cache is bumped.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	inventory := NewInventoryService(mem, cache, discardLogger())
	_, err = inventory.Reserve(ctx, hotel.ID, 1)
	require.NoError(t, err)

	_, _, ok := cache.GetHotels(context.Background(), "", 1)
	assert.False(t, ok)
}

func TestNoopHotelCache(t *testing.T) {
	var cache HotelCache = NoopHotelCache{}
	cache.SetHotels(context.Background(), 0, "", 1, []*models.Hotel{{Name: "Ibis"}})
	_, gen, ok := cache.GetHotels(context.Background(), "", 1)
	assert.False(t, ok)
	assert.Equal(t, noGeneration, gen)
}
