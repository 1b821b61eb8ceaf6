package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "suitetalk:wsdl:"

// RedisCache shares fetched documents across processes through Redis.
// Suited to worker fleets where every process would otherwise fetch the
// same schema set on startup.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisCache connects to Redis and verifies the connection. A ttl of
// zero or less falls back to DefaultTimeout.
func NewRedisCache(cfg RedisConfig, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: connect to redis: %w", err)
	}

	return NewRedisCacheWithClient(client, ttl), nil
}

// NewRedisCacheWithClient wraps an existing Redis client. Useful for tests
// or when sharing a client across components.
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTimeout
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
		prefix: defaultRedisPrefix,
	}
}

// Get returns the cached content for url.
func (c *RedisCache) Get(ctx context.Context, url string) ([]byte, error) {
	content, err := c.client.Get(ctx, c.prefix+url).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: redis get: %w", err)
	}
	return content, nil
}

// Put stores content for url with the configured TTL.
func (c *RedisCache) Put(ctx context.Context, url string, content []byte) error {
	if err := c.client.Set(ctx, c.prefix+url, content, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
