package utils

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// Cache is a JSON read-through cache over Redis. A nil *Cache, or one built
// without a client, is a no-op so callers never branch on Redis being present.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func (c *Cache) enabled() bool { return c != nil && c.client != nil }

// HashParams turns a filter value into a short stable key suffix.
func HashParams(params interface{}) string {
	b, _ := json.Marshal(params)
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:16])
}

func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if !c.enabled() {
		return false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return json.Unmarshal(val, dest) == nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if !c.enabled() {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Del(ctx context.Context, keys ...string) {
	if !c.enabled() || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// InvalidatePrefix drops every key starting with prefix.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if !c.enabled() {
		return
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("cache delete failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache invalidate failed", zap.String("prefix", prefix), zap.Error(err))
	}
}
