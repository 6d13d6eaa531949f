package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option adjusts client options parsed from the URL.
type Option func(*redis.Options)

// WithPoolSize overrides the connection pool size.
func WithPoolSize(n int) Option {
	return func(o *redis.Options) {
		if n > 0 {
			o.PoolSize = n
		}
	}
}

// WithTimeouts sets the dial and read/write timeouts.
func WithTimeouts(dial, rw time.Duration) Option {
	return func(o *redis.Options) {
		if dial > 0 {
			o.DialTimeout = dial
		}
		if rw > 0 {
			o.ReadTimeout = rw
			o.WriteTimeout = rw
		}
	}
}

// NewClient creates a new Redis client.
func NewClient(ctx context.Context, redisURL string, opts ...Option) (*redis.Client, error) {
	parsed, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	for _, opt := range opts {
		opt(parsed)
	}

	client := redis.NewClient(parsed)

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
