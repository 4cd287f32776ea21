package cache

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a RedisCache.
type RedisConfig struct {
	Addr     string `toml:"redis_addr"`
	Password string `toml:"redis_password"`
	DB       int    `toml:"redis_db"`

	// Prefix namespaces every key, e.g. "gridtext:".
	Prefix string `toml:"redis_prefix"`
}

// redisClient is the subset of *redis.Client used here.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisCache stores entries in Redis so several API server instances share
// one cache. Connection failures are retried with backoff.
type RedisCache struct {
	client redisClient
	prefix string
	delay  time.Duration
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	c := newRedisCache(client, cfg.Prefix)
	if err := c.retry(ctx, func() error { return client.Ping(ctx).Err() }); err != nil {
		client.Close()
		return nil, err
	}
	return c, nil
}

func newRedisCache(client redisClient, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, delay: time.Second}
}

// Get retrieves a value. redis.Nil is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := c.retry(ctx, func() error {
		b, err := c.client.Get(ctx, c.prefix+key).Bytes()
		data = b
		return err
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value with the given ttl (zero means no expiry).
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.retry(ctx, func() error {
		return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
	})
}

// Delete removes a key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.retry(ctx, func() error {
		return c.client.Del(ctx, c.prefix+key).Err()
	})
}

// Clear deletes every key under the cache prefix. An empty prefix would
// wipe the whole database, so it is refused.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	if c.prefix == "" {
		return 0, errors.New("refusing to clear redis cache without a key prefix")
	}
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 500).Result()
		if err != nil {
			return removed, err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return removed, err
			}
			removed += len(keys)
		}
		if cursor = next; cursor == 0 {
			return removed, nil
		}
	}
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// retry marks network errors retryable and runs fn with backoff.
func (c *RedisCache) retry(ctx context.Context, fn func() error) error {
	return retryWithBackoff(ctx, c.delay, func() error {
		err := fn()
		var ne net.Error
		if errors.As(err, &ne) {
			return Retryable(errors.Join(ErrNetwork, err))
		}
		return err
	})
}

var _ Cache = (*RedisCache)(nil)
