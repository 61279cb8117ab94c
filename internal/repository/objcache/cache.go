// Package objcache is a read-through cache in front of PID lookups.
package objcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/discovery/internal/db"
	"github.com/kailas-cloud/discovery/internal/domain"
	"github.com/kailas-cloud/discovery/internal/domain/document"
	objrepo "github.com/kailas-cloud/discovery/internal/repository/object"
)

var cacheKeyPrefix = domain.KeyPrefix + "obj_cache:"

// finder is the wrapped lookup.
type finder interface {
	FindByPID(ctx context.Context, idx domain.Index, pid string) (document.Document, int, error)
}

// store is the consumer interface for the object cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// entry is the cached form: the record plus the match count seen when it was loaded.
type entry struct {
	Matches int             `json:"matches"`
	Record  json.RawMessage `json:"record"`
}

// CachedFinder caches resolved records for a bounded TTL.
// Not-found results and errors are never cached.
type CachedFinder struct {
	inner      finder
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner finder,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedFinder {
	return &CachedFinder{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// FindByPID returns a cached record or calls the inner finder.
func (c *CachedFinder) FindByPID(ctx context.Context, idx domain.Index, pid string) (document.Document, int, error) {
	key := cacheKey(idx, pid)

	if doc, matches, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return doc, matches, nil
	}

	c.incCache("miss")

	doc, matches, err := c.inner.FindByPID(ctx, idx, pid)
	if err != nil {
		return document.Document{}, 0, fmt.Errorf("find %s: %w", pid, err)
	}

	c.putToCache(ctx, key, doc, matches)
	return doc, matches, nil
}

func (c *CachedFinder) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(idx domain.Index, pid string) string {
	return cacheKeyPrefix + string(idx) + ":" + pid
}

func (c *CachedFinder) getFromCache(ctx context.Context, key string) (document.Document, int, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached object", zap.String("key", key), zap.Error(err))
		}
		return document.Document{}, 0, false
	}
	if len(data) == 0 {
		return document.Document{}, 0, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.logger.Warn("Failed to parse cached object", zap.String("key", key), zap.Error(err))
		return document.Document{}, 0, false
	}
	doc, err := objrepo.Decode(e.Record)
	if err != nil {
		c.logger.Warn("Failed to decode cached object", zap.String("key", key), zap.Error(err))
		return document.Document{}, 0, false
	}

	return doc, e.Matches, true
}

func (c *CachedFinder) putToCache(ctx context.Context, key string, doc document.Document, matches int) {
	record, err := objrepo.Encode(doc)
	if err != nil {
		c.logger.Warn("Failed to encode object for cache", zap.String("key", key), zap.Error(err))
		return
	}
	data, err := json.Marshal(entry{Matches: matches, Record: record})
	if err != nil {
		c.logger.Warn("Failed to encode object for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache object", zap.String("key", key), zap.Error(err))
	}
}
