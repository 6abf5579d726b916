package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"foodorder/internal/infrastructure/metrics"
)

// Cache is a JSON read-through cache. A Cache without a client never hits, so callers fall back to storage.
type Cache struct {
	client *goredis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCache(client *goredis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func Key(prefix, id string) string {
	return prefix + ":" + id
}

func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	prefix := keyPrefix(key)
	if c.client == nil {
		metrics.CacheMisses.WithLabelValues(prefix).Inc()
		return false
	}

	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		metrics.CacheMisses.WithLabelValues(prefix).Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		c.logger.Warn("cache entry is corrupt", zap.String("key", key), zap.Error(err))
		metrics.CacheMisses.WithLabelValues(prefix).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(prefix).Inc()
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
