package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guttosm/marketpulse/internal/logger"
)

// pingTimeout bounds the connectivity check done at construction.
const pingTimeout = 5 * time.Second

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache stores values in Redis. When the startup ping fails it
// switches to pass-through for the rest of the process lifetime.
type RedisCache struct {
	client  *redis.Client
	enabled bool
}

// NewRedisCache connects and pings Redis once. It never returns an error:
// an unreachable server yields a permanently disabled cache.
func NewRedisCache(ctx context.Context, opts Options) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		logger.L().Warn().Err(err).Str("addr", opts.Addr).Msg("cache_disabled")
		_ = client.Close()
		return &RedisCache{}
	}

	logger.L().Info().Str("addr", opts.Addr).Msg("cache_connected")
	return &RedisCache{client: client, enabled: true}
}

func (c *RedisCache) Enabled() bool { return c.enabled }

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.L().Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if !c.enabled {
		return false
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.L().Warn().Err(err).Str("key", key).Msg("cache set failed")
		return false
	}
	return true
}

func (c *RedisCache) Delete(ctx context.Context, key string) bool {
	if !c.enabled {
		return false
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.L().Warn().Err(err).Str("key", key).Msg("cache delete failed")
		return false
	}
	return true
}

// Ping checks the live connection; used by the readiness check.
func (c *RedisCache) Ping(ctx context.Context) error {
	if !c.enabled {
		return errors.New("cache disabled")
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the client connection pool.
func (c *RedisCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
