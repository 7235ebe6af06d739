package content

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"lawfirm-site/internal/common/logger"
	"lawfirm-site/internal/common/metrics"

	"github.com/redis/go-redis/v9"
)

// CachedStore is a read-through Redis cache in front of another Store.
// Cache failures never fail a call; they fall through to the inner store.
type CachedStore struct {
	inner  Store
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStore(inner Store, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		rdb:    rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "content-cache"}),
	}
}

func cacheKey(key Key) string {
	return "site_content:" + string(key)
}

func (c *CachedStore) Get(ctx context.Context, key Key) (*Row, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(key)).Bytes()
	switch {
	case err == nil:
		var r Row
		if jsonErr := json.Unmarshal(raw, &r); jsonErr == nil {
			metrics.ContentCacheHits.WithLabelValues("hit").Inc()
			return &r, nil
		}
		c.logger.Warn("discarding corrupt cache entry", map[string]interface{}{"section": string(key)})
	case stderrors.Is(err, redis.Nil):
		metrics.ContentCacheHits.WithLabelValues("miss").Inc()
	default:
		metrics.ContentCacheHits.WithLabelValues("error").Inc()
		c.logger.Warn("content cache read failed", map[string]interface{}{
			"section": string(key),
			"error":   err,
		})
	}

	r, err := c.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	c.put(ctx, *r)
	return r, nil
}

// GetAll serves from cache only when every known section is cached.
func (c *CachedStore) GetAll(ctx context.Context) ([]Row, error) {
	all := Keys()
	cacheKeys := make([]string, len(all))
	for i, k := range all {
		cacheKeys[i] = cacheKey(k)
	}

	values, err := c.rdb.MGet(ctx, cacheKeys...).Result()
	if err == nil {
		if rows, ok := decodeCached(values); ok {
			metrics.ContentCacheHits.WithLabelValues("hit").Inc()
			return rows, nil
		}
		metrics.ContentCacheHits.WithLabelValues("miss").Inc()
	} else {
		metrics.ContentCacheHits.WithLabelValues("error").Inc()
		c.logger.Warn("content cache read failed", map[string]interface{}{"error": err})
	}

	rows, err := c.inner.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		c.put(ctx, r)
	}
	return rows, nil
}

func decodeCached(values []interface{}) ([]Row, bool) {
	rows := make([]Row, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		var r Row
		if err := json.Unmarshal([]byte(s), &r); err != nil {
			return nil, false
		}
		rows = append(rows, r)
	}
	return rows, true
}

// Update writes through and then refreshes the cache entry so a following
// Get observes the new document.
func (c *CachedStore) Update(ctx context.Context, r Row) error {
	if err := c.inner.Update(ctx, r); err != nil {
		return err
	}
	c.put(ctx, r)
	return nil
}

func (c *CachedStore) Seed(ctx context.Context, key Key, content json.RawMessage) (bool, error) {
	inserted, err := c.inner.Seed(ctx, key, content)
	if err != nil {
		return false, err
	}
	c.invalidate(ctx, key)
	return inserted, nil
}

func (c *CachedStore) put(ctx context.Context, r Row) {
	raw, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(r.Key), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("content cache write failed", map[string]interface{}{
			"section": string(r.Key),
			"error":   err,
		})
		c.invalidate(ctx, r.Key)
	}
}

func (c *CachedStore) invalidate(ctx context.Context, key Key) {
	if err := c.rdb.Del(ctx, cacheKey(key)).Err(); err != nil {
		c.logger.Warn("content cache invalidation failed", map[string]interface{}{
			"section": string(key),
			"error":   err,
		})
	}
}
