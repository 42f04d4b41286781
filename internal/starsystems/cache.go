package starsystems

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/rescue-dispatch/internal/domain"
	"github.com/spec-kit/rescue-dispatch/internal/observability"
)

// CachedLookup wraps a Lookup with a Redis-backed cache for check results.
// Jump-call permit checks hit the same systems repeatedly; caching keeps the
// catalog service out of the hot path. A Redis outage degrades to direct
// lookups.
type CachedLookup struct {
	inner   Lookup
	redis   *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewCachedLookup builds the caching layer.
func NewCachedLookup(inner Lookup, client *redis.Client, ttl time.Duration, logger *zap.Logger, metrics *observability.Metrics) *CachedLookup {
	return &CachedLookup{
		inner:   inner,
		redis:   client,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

// Search is uncached; result ranking depends on the raw query and repeats
// are rare.
func (c *CachedLookup) Search(ctx context.Context, name string) ([]SearchResult, error) {
	return c.inner.Search(ctx, name)
}

// Check consults the cache before the catalog service.
func (c *CachedLookup) Check(ctx context.Context, name string) (domain.SystemLookup, error) {
	key := cacheKey(name)
	if c.redis != nil {
		cached, err := c.redis.Get(ctx, key).Result()
		if err == nil {
			var lookup domain.SystemLookup
			if jsonErr := json.Unmarshal([]byte(cached), &lookup); jsonErr == nil {
				c.metrics.Inc(observability.MetricLookupCacheHit)
				return lookup, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			c.logger.Debug("systems cache unavailable", zap.Error(err))
		}
	}

	c.metrics.Inc(observability.MetricLookupCacheMiss)
	lookup, err := c.inner.Check(ctx, name)
	if err != nil {
		return domain.SystemLookup{}, err
	}

	if c.redis != nil {
		if encoded, jsonErr := json.Marshal(lookup); jsonErr == nil {
			if setErr := c.redis.Set(ctx, key, encoded, c.ttl).Err(); setErr != nil {
				c.logger.Debug("systems cache write failed", zap.Error(setErr))
			}
		}
	}
	return lookup, nil
}

func cacheKey(name string) string {
	return "syscheck:" + strings.ToUpper(strings.TrimSpace(name))
}
