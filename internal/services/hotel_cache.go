package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/redis/go-redis/v9"
)

const hotelCacheGenKey = "hotels:gen"

// HotelCache holds listing pages. Implementations swallow their own failures;
// a cache miss must never fail a request.
//
// GetHotels reports the generation it looked under, and SetHotels must be
// given that same generation. A page read from the store while the ledger
// moved is then filed under a generation that is already retired.
type HotelCache interface {
	GetHotels(ctx context.Context, location string, page int) ([]*models.Hotel, int64, bool)
	SetHotels(ctx context.Context, gen int64, location string, page int, hotels []*models.Hotel)
	Invalidate(ctx context.Context)
}

// noGeneration tells SetHotels that the generation could not be read.
const noGeneration int64 = -1

type NoopHotelCache struct{}

func (NoopHotelCache) GetHotels(context.Context, string, int) ([]*models.Hotel, int64, bool) {
	return nil, noGeneration, false
}

func (NoopHotelCache) SetHotels(context.Context, int64, string, int, []*models.Hotel) {}

func (NoopHotelCache) Invalidate(context.Context) {}

// RedisHotelCache namespaces every page under a generation counter. Bumping
// the counter orphans all pages at once; the TTL cleans them up.
type RedisHotelCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisHotelCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisHotelCache {
	return &RedisHotelCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func hotelPageKey(gen int64, location string, page int) string {
	return fmt.Sprintf("hotels:list:%d:%q:%d", gen, location, page)
}

func (rc *RedisHotelCache) generation(ctx context.Context) (int64, error) {
	gen, err := rc.client.Get(ctx, hotelCacheGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (rc *RedisHotelCache) GetHotels(ctx context.Context, location string, page int) ([]*models.Hotel, int64, bool) {
	gen, err := rc.generation(ctx)
	if err != nil {
		rc.logger.Warn("hotel cache generation lookup failed", "error", err)
		return nil, noGeneration, false
	}
	raw, err := rc.client.Get(ctx, hotelPageKey(gen, location, page)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false
	}
	if err != nil {
		rc.logger.Warn("hotel cache read failed", "error", err)
		return nil, gen, false
	}

	var hotels []*models.Hotel
	if err := json.Unmarshal(raw, &hotels); err != nil {
		rc.logger.Warn("hotel cache entry is corrupt", "error", err)
		return nil, gen, false
	}
	return hotels, gen, true
}

func (rc *RedisHotelCache) SetHotels(ctx context.Context, gen int64, location string, page int, hotels []*models.Hotel) {
	if gen < 0 {
		return
	}
	raw, err := json.Marshal(hotels)
	if err != nil {
		rc.logger.Warn("hotel cache encode failed", "error", err)
		return
	}
	if err := rc.client.Set(ctx, hotelPageKey(gen, location, page), raw, rc.ttl).Err(); err != nil {
		rc.logger.Warn("hotel cache write failed", "error", err)
	}
}

func (rc *RedisHotelCache) Invalidate(ctx context.Context) {
	if err := rc.client.Incr(ctx, hotelCacheGenKey).Err(); err != nil {
		rc.logger.Warn("hotel cache invalidation failed", "error", err)
	}
}
