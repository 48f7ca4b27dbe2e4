// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"kis_backend/internal/feature/chart/domain/entity"
	"kis_backend/internal/feature/chart/usecase"
)

// CachingBarRepository decorates a BarRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Reads of the full series are cached;
// writes invalidate the affected series so the next read repopulates.
type CachingBarRepository struct {
	inner     usecase.BarRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.BarRepository = (*CachingBarRepository)(nil)

// NewCachingBarRepository decorates a BarRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "bars".
func NewCachingBarRepository(rdb *redis.Client, ttl time.Duration, inner usecase.BarRepository, namespace string) *CachingBarRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "bars"
	}
	return &CachingBarRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// UpsertBatch writes bars through to the underlying repository and invalidates
// the cached series they belong to.
func (c *CachingBarRepository) UpsertBatch(ctx context.Context, bars []entity.Bar) error {
	if err := c.inner.UpsertBatch(ctx, bars); err != nil {
		return err
	}
	if c.rdb == nil || len(bars) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	for _, b := range bars {
		key := c.cacheKey(b.Symbol, b.Interval)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		_ = c.rdb.Del(ctx, key).Err() // Best effort: don't fail the write if invalidation fails
	}
	return nil
}

// FindAll retrieves the full bar series, checking cache first then falling
// back to the database.
func (c *CachingBarRepository) FindAll(ctx context.Context, symbol string, interval entity.Interval) ([]entity.Bar, error) {
	if c.rdb == nil {
		return c.inner.FindAll(ctx, symbol, interval)
	}

	key := c.cacheKey(symbol, interval)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Bar
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindAll(ctx, symbol, interval)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// LatestDate goes straight to the database. It is a single-row lookup the
// sync engine uses for freshness checks, and a stale answer here would defeat
// the daily top-up.
func (c *CachingBarRepository) LatestDate(ctx context.Context, symbol string, interval entity.Interval) (string, error) {
	return c.inner.LatestDate(ctx, symbol, interval)
}

// cacheKey generates the cache key for one symbol/interval series.
func (c *CachingBarRepository) cacheKey(symbol string, interval entity.Interval) string {
	return fmt.Sprintf("%s:%s:%s",
		c.namespace,
		safe(symbol),
		safe(string(interval)),
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
