package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bookitdev/seat-booking/internal/config"
)

func TestSeatCacheNilClientDegradesToNoop(t *testing.T) {
	sc := NewSeatCache(config.CacheConfig{Enabled: true, TTL: time.Second, Prefix: "seatcache"}, nil)
	ctx := context.Background()

	if _, ok := sc.Get(ctx); ok {
		t.Fatal("expected miss from disabled cache")
	}
	sc.Set(ctx, []byte(`{"items":[]}`))
	sc.Invalidate(ctx)
	if _, ok := sc.Get(ctx); ok {
		t.Fatal("disabled cache must never report a hit")
	}
}

func TestSeatCacheDisabledConfigDropsClient(t *testing.T) {
	// Client is never dialed: with Enabled=false every call must short
	// circuit before reaching Redis.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer rdb.Close()

	sc := NewSeatCache(config.CacheConfig{Enabled: false, TTL: time.Second, Prefix: "seatcache"}, rdb)
	ctx := context.Background()

	if _, ok := sc.Get(ctx); ok {
		t.Fatal("expected miss from disabled cache")
	}
	sc.Set(ctx, []byte("x"))
	sc.Invalidate(ctx)
}

func TestSeatCacheDefaultsNonPositiveTTL(t *testing.T) {
	sc := NewSeatCache(config.CacheConfig{Enabled: true, TTL: 0, Prefix: "seatcache"}, nil)
	if sc.ttl != 30*time.Second {
		t.Fatalf("expected 30s default ttl, got %v", sc.ttl)
	}
}
