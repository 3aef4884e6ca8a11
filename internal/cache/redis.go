package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jaymatch/server/internal/config"
)

// matchExistsTTL bounds staleness for entries that were never written
// through (e.g. rows touched outside this process).
const matchExistsTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// KeyForMatch generates the cache key for a canonical user pair.
func (c *RedisCache) KeyForMatch(lo, hi uint64) string {
	return fmt.Sprintf("match:exists:%d:%d", lo, hi)
}

// SetMatchExists writes through the match-existence result for a canonical
// pair. Match create/delete call this so the hot send-path check stays
// consistent without a DB round trip.
func (c *RedisCache) SetMatchExists(ctx context.Context, lo, hi uint64, exists bool) error {
	val := "0"
	if exists {
		val = "1"
	}
	return c.Client.Set(ctx, c.KeyForMatch(lo, hi), val, matchExistsTTL).Err()
}

// GetMatchExists returns (exists, hit). A miss means the caller must fall
// back to the store.
func (c *RedisCache) GetMatchExists(ctx context.Context, lo, hi uint64) (bool, bool, error) {
	val, err := c.Client.Get(ctx, c.KeyForMatch(lo, hi)).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	} else if err != nil {
		return false, false, err
	}
	return val == "1", true, nil
}
