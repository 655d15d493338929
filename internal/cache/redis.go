package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sahanr/mangala/internal/config"
)

// countTTL bounds staleness of cached counters; refreshed on every touch.
const countTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes the Redis client from config.
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

func keyForLikeCount(userID uint64) string {
	return fmt.Sprintf("likes:received:%d", userID)
}

// GetLikeCount returns the cached count of likes received by a user.
// The second return is false on cache miss. TTL is refreshed on access.
func (c *RedisCache) GetLikeCount(ctx context.Context, userID uint64) (int64, bool, error) {
	key := keyForLikeCount(userID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil // treat garbage as a miss
	}
	_ = c.Client.Expire(ctx, key, countTTL).Err()
	return n, true, nil
}

// SetLikeCount stores the count of likes received by a user with a fresh TTL.
func (c *RedisCache) SetLikeCount(ctx context.Context, userID uint64, count int64) error {
	return c.Client.Set(ctx, keyForLikeCount(userID), count, countTTL).Err()
}

// BumpLikeCount increments the cached count for a newly recorded like.
// A miss is left as a miss; the next read repopulates from the store.
func (c *RedisCache) BumpLikeCount(ctx context.Context, userID uint64) {
	key := keyForLikeCount(userID)
	exists, err := c.Client.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return
	}
	_ = c.Client.Incr(ctx, key).Err()
	_ = c.Client.Expire(ctx, key, countTTL).Err()
}

// InvalidateLikeCount drops the cached counter for a user.
func (c *RedisCache) InvalidateLikeCount(ctx context.Context, userID uint64) error {
	return c.Client.Del(ctx, keyForLikeCount(userID)).Err()
}
