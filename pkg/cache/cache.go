package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/tenantcore/pkg/kv"
	"github.com/dmitrymomot/tenantcore/pkg/logger"
)

// Key composes a storage key from an entity prefix and an identifier,
// following the "<prefix>_<id>" convention shared by all cached entity types.
func Key(prefix, id string) string {
	return prefix + "_" + id
}

// entry is the JSON envelope stored for every cached value. The TTL lives in
// the envelope rather than at the store level so that expiry can be computed
// from the creation timestamp on read.
type entry[T any] struct {
	Value      T     `json:"value"`
	CreatedAt  int64 `json:"created_at"`
	TTLSeconds int64 `json:"ttl_seconds,omitempty"`
}

// expired reports whether the entry is past its deadline at now.
// A TTL of zero or less means the entry never expires.
func (e entry[T]) expired(now time.Time) bool {
	if e.TTLSeconds <= 0 {
		return false
	}
	return now.Unix() > e.CreatedAt+e.TTLSeconds
}

// Cache is a typed distributed cache over a shared key/value store. It holds
// no in-process state; concurrent callers race at the store level where
// last-write-wins applies.
type Cache[T any] struct {
	store  kv.Store
	prefix string
	ttl    time.Duration // 0 = entries never expire
	log    *slog.Logger
	now    func() time.Time
}

// Option configures a Cache.
type Option[T any] func(*Cache[T])

// WithTTL sets the expiration applied to every entry written by Set.
// Zero or negative means entries never expire.
func WithTTL[T any](ttl time.Duration) Option[T] {
	return func(c *Cache[T]) { c.ttl = ttl }
}

// WithLogger sets the logger used for background eviction failures.
func WithLogger[T any](log *slog.Logger) Option[T] {
	return func(c *Cache[T]) {
		if log != nil {
			c.log = log
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Cache[T]) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a cache for one entity type. The prefix namespaces keys in the
// shared store so different entity types cannot collide.
func New[T any](store kv.Store, prefix string, opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		store:  store,
		prefix: prefix,
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key, or ErrCacheMiss when the key is
// absent or its entry has expired. Expired entries are deleted from the
// store in the background. Store transport errors pass through unclassified.
func (c *Cache[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	storageKey := Key(c.prefix, key)
	raw, err := c.store.Get(ctx, storageKey)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return zero, ErrCacheMiss
		}
		return zero, err
	}

	var e entry[T]
	if err := json.Unmarshal(raw, &e); err != nil {
		return zero, errors.Join(ErrInvalidEntry, err)
	}

	if e.expired(c.now()) {
		// Evict lazily without holding up the read path. The entry is
		// re-derivable from the source of truth, so a failed delete only
		// delays the next miss.
		go func() {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := c.store.Delete(ctx, storageKey); err != nil {
				c.log.WarnContext(ctx, "failed to evict expired cache entry",
					logger.CacheKey(storageKey), logger.Error(err))
			}
		}()
		return zero, ErrCacheMiss
	}

	return e.Value, nil
}

// Set writes value under key, unconditionally overwriting any existing entry.
// The configured TTL is recorded in the entry envelope; a cache configured
// without expiration writes entries that never expire.
func (c *Cache[T]) Set(ctx context.Context, key string, value T) error {
	e := entry[T]{
		Value:     value,
		CreatedAt: c.now().Unix(),
	}
	if c.ttl > 0 {
		e.TTLSeconds = int64(c.ttl.Seconds())
	}

	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, Key(c.prefix, key), raw, 0)
}

// Delete removes the entry for key. Deleting an absent key is a no-op.
func (c *Cache[T]) Delete(ctx context.Context, key string) error {
	return c.store.Delete(ctx, Key(c.prefix, key))
}

// GetOrFetch implements cache-aside: return the cached value when present,
// otherwise call fetch against the source of truth, cache the result and
// return it. Fetch errors propagate unchanged so callers can classify them;
// a failed write-back is logged and does not mask a successful fetch.
func (c *Cache[T]) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	value, err := c.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return value, err
	}

	value, err = fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := c.Set(ctx, key, value); err != nil {
		c.log.WarnContext(ctx, "failed to populate cache after fetch",
			logger.CacheKey(Key(c.prefix, key)), logger.Error(err))
	}
	return value, nil
}
