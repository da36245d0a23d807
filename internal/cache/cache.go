// Package cache provides an optional Redis-backed TTL cache for computed
// analytics results. The category store stays the source of truth; cache
// entries are versioned by store revision, so stale results simply expire.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"skillviz-utils/internal/config"
	"skillviz-utils/internal/logging"
)

// AnalyticsCache wraps the Redis client. A disabled cache is fully
// functional: every Get is a miss and every Set is a no-op, so handlers
// never branch on whether Redis is configured.
type AnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// New creates an analytics cache from configuration. Returns a disabled
// cache when Redis caching is turned off.
func New(cfg *config.Config) *AnalyticsCache {
	if !cfg.Redis.Enabled {
		return &AnalyticsCache{logger: logging.GetGlobalLogger()}
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		opts = &redis.Options{Addr: "localhost:6379"}
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB
	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = cfg.Redis.Timeout
	opts.WriteTimeout = cfg.Redis.Timeout

	return &AnalyticsCache{
		client: redis.NewClient(opts),
		ttl:    cfg.Redis.CacheTTL,
		logger: logging.GetGlobalLogger(),
	}
}

// Enabled reports whether a Redis backend is configured
func (c *AnalyticsCache) Enabled() bool {
	return c.client != nil
}

// Key builds a cache key from the dataset identity and query parameters.
// The store revision is part of the key, so a mutated category can never
// serve a stale result.
func (c *AnalyticsCache) Key(category string, revision uint64, parts ...string) string {
	return fmt.Sprintf("analytics:%s:%d:%s", category, revision, strings.Join(parts, ":"))
}

// Get loads a cached result into dest. Returns false on miss, on a
// disabled cache, or on any Redis error (errors degrade to misses).
func (c *AnalyticsCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c.client == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Analytics cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("Analytics cache entry malformed", map[string]interface{}{"key": key})
		return false
	}

	return true
}

// Set stores a computed result under the key with the configured TTL.
// Failures are logged and swallowed; caching is best-effort.
func (c *AnalyticsCache) Set(ctx context.Context, key string, value interface{}) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Analytics cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Ping tests the Redis connection
func (c *AnalyticsCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *AnalyticsCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
