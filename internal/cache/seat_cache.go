// Package cache holds the Redis-backed read cache for the seat list.
// The seat list is the hottest read in the system (every client polls it
// while choosing a seat) and is invalidated on every write so a booked
// seat is never served as free beyond the moment of invalidation.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bookitdev/seat-booking/internal/config"
)

// SeatCache caches the marshaled seat-list response body. A nil client
// disables the cache entirely; every method degrades to a miss/no-op so
// callers never branch on availability.
type SeatCache struct {
	rdb *redis.Client
	ttl time.Duration
	key string
}

// NewSeatCache builds a SeatCache from config. Returns a disabled cache
// when caching is off or no Redis client is available.
func NewSeatCache(cfg config.CacheConfig, rdb *redis.Client) *SeatCache {
	if !cfg.Enabled {
		rdb = nil
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SeatCache{rdb: rdb, ttl: ttl, key: cfg.Prefix + ":seats"}
}

// Get returns the cached seat-list body, or ok=false on miss, disabled
// cache or Redis error.
func (sc *SeatCache) Get(ctx context.Context) ([]byte, bool) {
	if sc.rdb == nil {
		return nil, false
	}
	bs, err := sc.rdb.Get(ctx, sc.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.WithError(err).Warn("seat cache read failed")
		}
		return nil, false
	}
	return bs, true
}

// Set stores the seat-list body with the configured TTL. Errors are
// logged, never surfaced; a failed cache write must not fail the request.
func (sc *SeatCache) Set(ctx context.Context, body []byte) {
	if sc.rdb == nil {
		return
	}
	if err := sc.rdb.SetEx(ctx, sc.key, body, sc.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("seat cache write failed")
	}
}

// Invalidate drops the cached seat list. Called after every seat write
// (create or booking) so the next read reflects committed state. The TTL
// bounds staleness if this delete is lost.
func (sc *SeatCache) Invalidate(ctx context.Context) {
	if sc.rdb == nil {
		return
	}
	if err := sc.rdb.Del(ctx, sc.key).Err(); err != nil {
		logrus.WithError(err).Warn("seat cache invalidation failed")
	}
}
