package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smartbill/backend/internal/domain/report"
	"github.com/smartbill/backend/internal/infrastructure/config"
)

// RedisReportCache implements ReportCache using Redis. Suitable when
// several instances serve dashboard requests against the same database.
type RedisReportCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisReportCache creates a Redis-backed report cache
func NewRedisReportCache(cfg config.RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReportCache{
		client:    client,
		keyPrefix: "report:dashboard:",
	}, nil
}

// NewRedisReportCacheWithClient creates a cache with an existing Redis client
func NewRedisReportCacheWithClient(client *redis.Client, keyPrefix string) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = "report:dashboard:"
	}
	return &RedisReportCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached dashboard, or nil on a cache miss
func (c *RedisReportCache) Get(ctx context.Context, key string) (*report.Dashboard, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached report: %w", err)
	}

	var dashboard report.Dashboard
	if err := json.Unmarshal(data, &dashboard); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &dashboard, nil
}

// Set stores the dashboard with a TTL
func (c *RedisReportCache) Set(ctx context.Context, key string, dashboard *report.Dashboard, ttl time.Duration) error {
	data, err := json.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// Invalidate drops a cached dashboard
func (c *RedisReportCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.keyPrefix+key).Err()
}

// Close closes the Redis client
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}
