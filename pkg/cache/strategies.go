package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"apunab/pkg/logger"
)

// CacheStrategy - caching strategy interface
type CacheStrategy interface {
	Execute(ctx context.Context, key string, dest interface{}, fetchFunc func() (interface{}, error)) error
}

// ReadThroughStrategy reads from cache first, falls back to source on miss
type ReadThroughStrategy struct {
	cache      Cache
	logger     logger.Logger
	expiration time.Duration
}

func NewReadThroughStrategy(cache Cache, logger logger.Logger, expiration time.Duration) CacheStrategy {
	return &ReadThroughStrategy{
		cache:      cache,
		logger:     logger,
		expiration: expiration,
	}
}

func (s *ReadThroughStrategy) Execute(ctx context.Context, key string, dest interface{}, fetchFunc func() (interface{}, error)) error {
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return nil
	}

	if err != ErrCacheMiss {
		s.logger.Warn("Cache okuma hatası, kaynaktan devam ediliyor", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	data, err := fetchFunc()
	if err != nil {
		return err
	}

	if setErr := s.cache.Set(ctx, key, data, s.expiration); setErr != nil {
		s.logger.Warn("Cache yazma hatası", map[string]interface{}{
			"key":   key,
			"error": setErr.Error(),
		})
	}

	return copyData(data, dest)
}

// Cache key helpers

func BetCacheKey(betID string) string {
	return fmt.Sprintf("bet:id:%s", betID)
}

func UserBetsCacheKey(userID string) string {
	return fmt.Sprintf("bets:user:%s", userID)
}

func AllBetsCacheKey() string {
	return "bets:all"
}

func ActiveBetsCacheKey() string {
	return "bets:active"
}

func VenueCacheKey(venueID string) string {
	return fmt.Sprintf("venue:id:%s", venueID)
}

func AllVenuesCacheKey() string {
	return "venues:all"
}

// InvalidateBetCache removes all cache entries touched by a bet mutation
func InvalidateBetCache(ctx context.Context, cache Cache, betID string, bettorID string) error {
	keys := []string{
		BetCacheKey(betID),
		UserBetsCacheKey(bettorID),
		AllBetsCacheKey(),
		ActiveBetsCacheKey(),
	}
	return cache.DeleteMultiple(ctx, keys)
}

// InvalidateVenueCache removes all cache entries touched by a venue mutation
func InvalidateVenueCache(ctx context.Context, cache Cache, venueID string) error {
	keys := []string{
		VenueCacheKey(venueID),
		AllVenuesCacheKey(),
	}
	return cache.DeleteMultiple(ctx, keys)
}

// copyData copies fetched data into the destination via JSON round-trip
func copyData(src, dest interface{}) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
