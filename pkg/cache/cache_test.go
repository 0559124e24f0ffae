package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantcore/pkg/cache"
	"github.com/dmitrymomot/tenantcore/pkg/kv"
)

type payload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// brokenStore fails every operation with the given error.
type brokenStore struct {
	err error
}

func (s *brokenStore) Get(ctx context.Context, key string) ([]byte, error) { return nil, s.err }
func (s *brokenStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.err
}
func (s *brokenStore) Delete(ctx context.Context, key string) error { return s.err }
func (s *brokenStore) Close() error                                 { return nil }

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "tenant_acme", cache.Key("tenant", "acme"))
}

func TestCacheSetGet(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	c := cache.New[payload](store, "tenant")

	want := payload{ID: "acme", Name: "Acme"}
	require.NoError(t, c.Set(ctx, "acme", want))

	got, err := c.Get(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCacheMiss(t *testing.T) {
	c := cache.New[payload](kv.NewMemoryStore(), "tenant")

	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestCacheTTLBoundaries(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	base := time.Now()
	now := base
	c := cache.New[payload](store, "tenant",
		cache.WithTTL[payload](60*time.Second),
		cache.WithClock[payload](func() time.Time { return now }),
	)

	require.NoError(t, c.Set(ctx, "acme", payload{ID: "acme"}))

	// One second before the deadline the entry is still live.
	now = base.Add(59 * time.Second)
	got, err := c.Get(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", got.ID)

	// Past the deadline it reads as a miss and is removed from the store.
	now = base.Add(61 * time.Second)
	_, err = c.Get(ctx, "acme")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	require.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 10*time.Millisecond, "expired entry should be deleted from the store")
}

func TestCacheNoTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	base := time.Now()
	now := base
	c := cache.New[payload](store, "tenant",
		cache.WithClock[payload](func() time.Time { return now }),
	)

	require.NoError(t, c.Set(ctx, "acme", payload{ID: "acme"}))

	now = base.Add(10 * 365 * 24 * time.Hour)
	got, err := c.Get(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", got.ID)
}

func TestCacheSetOverwrites(t *testing.T) {
	ctx := context.Background()
	c := cache.New[payload](kv.NewMemoryStore(), "tenant")

	require.NoError(t, c.Set(ctx, "acme", payload{ID: "acme", Name: "old"}))
	require.NoError(t, c.Set(ctx, "acme", payload{ID: "acme", Name: "new"}))

	got, err := c.Get(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
}

func TestCacheDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	c := cache.New[payload](kv.NewMemoryStore(), "tenant")

	require.NoError(t, c.Set(ctx, "acme", payload{ID: "acme"}))
	require.NoError(t, c.Delete(ctx, "acme"))
	require.NoError(t, c.Delete(ctx, "acme"))

	_, err := c.Get(ctx, "acme")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestCacheTransportErrorPassesThrough(t *testing.T) {
	ctx := context.Background()
	transportErr := errors.New("connection refused")
	c := cache.New[payload](&brokenStore{err: transportErr}, "tenant")

	_, err := c.Get(ctx, "acme")
	assert.ErrorIs(t, err, transportErr)
	assert.NotErrorIs(t, err, cache.ErrCacheMiss)

	assert.ErrorIs(t, c.Set(ctx, "acme", payload{}), transportErr)
	assert.ErrorIs(t, c.Delete(ctx, "acme"), transportErr)
}

func TestGetOrFetchHitSkipsFetch(t *testing.T) {
	ctx := context.Background()
	c := cache.New[payload](kv.NewMemoryStore(), "tenant")

	require.NoError(t, c.Set(ctx, "acme", payload{ID: "acme", Name: "cached"}))

	fetched := 0
	got, err := c.GetOrFetch(ctx, "acme", func(ctx context.Context) (payload, error) {
		fetched++
		return payload{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "cached", got.Name)
	assert.Zero(t, fetched, "fetch must not run on a cache hit")
}

func TestGetOrFetchMissPopulatesCache(t *testing.T) {
	ctx := context.Background()
	c := cache.New[payload](kv.NewMemoryStore(), "tenant")

	fetched := 0
	fetch := func(ctx context.Context) (payload, error) {
		fetched++
		return payload{ID: "acme", Name: "fresh"}, nil
	}

	got, err := c.GetOrFetch(ctx, "acme", fetch)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name)
	require.Equal(t, 1, fetched)

	// Second call is served from the cache.
	got, err = c.GetOrFetch(ctx, "acme", fetch)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name)
	assert.Equal(t, 1, fetched)
}

func TestGetOrFetchPropagatesFetchError(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	c := cache.New[payload](store, "tenant")

	fetchErr := errors.New("upstream down")
	_, err := c.GetOrFetch(ctx, "acme", func(ctx context.Context) (payload, error) {
		return payload{}, fetchErr
	})
	assert.ErrorIs(t, err, fetchErr)
	assert.Equal(t, 0, store.Len(), "failed fetches must not be cached")
}
