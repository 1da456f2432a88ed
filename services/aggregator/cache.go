package aggregator

import (
	"context"
	"encoding/json"
	"time"

	"tripdesk/models"
	"tripdesk/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ResponseCache keeps the latest aggregate-all payload in Redis for a short
// TTL so dashboard refresh storms do not hammer the partners. Cache failures
// degrade to a direct aggregation; they are never surfaced to the caller.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewResponseCache creates a cache with the given TTL. A nil cache is valid
// and disables caching entirely.
func NewResponseCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ResponseCache {
	return &ResponseCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached response, or nil on miss or any cache error.
func (c *ResponseCache) Get(ctx context.Context) *models.AggregatedResponse {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := c.client.Get(ctx, utils.AggregationCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("aggregation cache read failed", zap.Error(err))
		}
		return nil
	}

	var resp models.AggregatedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.logger.Warn("aggregation cache entry corrupt, dropping", zap.Error(err))
		_ = c.client.Del(ctx, utils.AggregationCacheKey).Err()
		return nil
	}
	return &resp
}

// Set stores the response for the configured TTL.
func (c *ResponseCache) Set(ctx context.Context, resp *models.AggregatedResponse) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		c.logger.Warn("aggregation cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, utils.AggregationCacheKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("aggregation cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached payload. Called whenever a partner's active
// flag changes so toggles are visible on the very next aggregation.
func (c *ResponseCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, utils.AggregationCacheKey).Err(); err != nil {
		c.logger.Warn("aggregation cache invalidation failed", zap.Error(err))
	}
}
