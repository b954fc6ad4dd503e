package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"agency-site-be/internal/entity"
	"agency-site-be/internal/pkg/logger"
	"agency-site-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const renderCachePrefix = "render:"

// RedisRenderCache shares rendered documents between instances. Redis failures
// are logged and treated as misses.
type RedisRenderCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewRedisRenderCache(rdb *redis.Client, ttl time.Duration, log logger.ILogger) contract.RenderCache {
	return &RedisRenderCache{rdb: rdb, ttl: ttl, logger: log}
}

func (c *RedisRenderCache) Get(ctx context.Context, key string) (*entity.RenderedDocument, bool) {
	raw, err := c.rdb.Get(ctx, renderCachePrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("RENDER_CACHE", "Redis get failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, false
	}

	var doc entity.RenderedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false
	}
	return &doc, true
}

func (c *RedisRenderCache) Set(ctx context.Context, key string, doc *entity.RenderedDocument) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, renderCachePrefix+key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("RENDER_CACHE", "Redis set failed", map[string]interface{}{"error": err.Error()})
	}
}
