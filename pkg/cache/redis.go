package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a RedisCache.
type RedisConfig struct {
	// URL is a redis:// or rediss:// URL.
	URL string
	// Attempts is the number of tries for transient failures (default 3).
	Attempts int
	// Backoff is the first retry delay (default 50ms), doubled per retry.
	Backoff time.Duration
}

// RedisCache shares entries between server instances.
type RedisCache struct {
	client   *redis.Client
	attempts int
	backoff  time.Duration
}

// NewRedisCache connects to Redis and pings it.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	c := &RedisCache{
		client:   redis.NewClient(opts),
		attempts: cfg.Attempts,
		backoff:  cfg.Backoff,
	}
	if c.attempts <= 0 {
		c.attempts = 3
	}
	if c.backoff <= 0 {
		c.backoff = 50 * time.Millisecond
	}

	if err := c.retry(ctx, func() error { return c.client.Ping(ctx).Err() }); err != nil {
		c.client.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return c, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	hit := false
	err := c.retry(ctx, func() error {
		b, err := c.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		data, hit = b, true
		return nil
	})
	return data, hit, err
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.retry(ctx, func() error {
		return c.client.Set(ctx, key, data, ttl).Err()
	})
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.retry(ctx, func() error {
		return c.client.Del(ctx, key).Err()
	})
}

// Clear deletes every key matching prefix*. It returns the number deleted.
func (c *RedisCache) Clear(ctx context.Context, prefix string) (int, error) {
	n := 0
	iter := c.client.Scan(ctx, 0, prefix+"*", 256).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return n, err
		}
		n++
	}
	return n, iter.Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// retry runs fn with backoff, treating everything except cancellation and
// a closed client as transient.
func (c *RedisCache) retry(ctx context.Context, fn func() error) error {
	return Retry(ctx, c.attempts, c.backoff, func() error {
		err := fn()
		switch {
		case err == nil:
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		case errors.Is(err, redis.ErrClosed):
			return ErrClosed
		default:
			return Retryable(err)
		}
	})
}

var _ Cache = (*RedisCache)(nil)
