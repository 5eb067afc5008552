// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"incrementum/internal/feature/history/domain/entity"
	"incrementum/internal/feature/history/usecase"
)

// CachingBarRepository decorates a BarRepository with Redis caching. Range
// and Latest results are cached per symbol and granularity; every write to a
// symbol invalidates that symbol's entries so readers never see stale rows.
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

// Insert stores one bar and invalidates the symbol's cache entries.
func (c *CachingBarRepository) Insert(ctx context.Context, bar *entity.Bar) error {
	if err := c.inner.Insert(ctx, bar); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	// Best effort: a failed invalidation only shortens cache usefulness.
	_ = c.deleteByPattern(ctx, c.symbolPrefix(bar.StockSymbol, bar.IsHourly)+"*")
	return nil
}

// SaveBatch stores many bars and invalidates every touched symbol's entries.
func (c *CachingBarRepository) SaveBatch(ctx context.Context, bars []entity.Bar, upsert bool) error {
	if err := c.inner.SaveBatch(ctx, bars, upsert); err != nil {
		return err
	}
	if c.rdb == nil || len(bars) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	for _, b := range bars {
		prefix := c.symbolPrefix(b.StockSymbol, b.IsHourly)
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		_ = c.deleteByPattern(ctx, prefix+"*")
	}
	return nil
}

// Range retrieves bars, checking cache first then falling back to the database.
func (c *CachingBarRepository) Range(ctx context.Context, symbol string, from, to time.Time, isHourly bool) ([]entity.Bar, error) {
	if c.rdb == nil {
		return c.inner.Range(ctx, symbol, from, to, isHourly)
	}

	key := c.rangeKey(symbol, from, to, isHourly)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Bar
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.Range(ctx, symbol, from, to, isHourly)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// Latest retrieves the newest bar, checking cache first.
func (c *CachingBarRepository) Latest(ctx context.Context, symbol string, isHourly bool) (*entity.Bar, error) {
	if c.rdb == nil {
		return c.inner.Latest(ctx, symbol, isHourly)
	}

	key := c.latestKey(symbol, isHourly)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Bar
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.Latest(ctx, symbol, isHourly)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingBarRepository) rangeKey(symbol string, from, to time.Time, isHourly bool) string {
	return fmt.Sprintf("%srange:%d:%d", c.symbolPrefix(symbol, isHourly), from.Unix(), to.Unix())
}

func (c *CachingBarRepository) latestKey(symbol string, isHourly bool) string {
	return c.symbolPrefix(symbol, isHourly) + "latest"
}

func (c *CachingBarRepository) symbolPrefix(symbol string, isHourly bool) string {
	return fmt.Sprintf("%s:%s:%t:", c.namespace, safe(symbol), isHourly)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingBarRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
