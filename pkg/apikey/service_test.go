package apikey_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantcore/pkg/apikey"
	"github.com/dmitrymomot/tenantcore/pkg/cache"
	"github.com/dmitrymomot/tenantcore/pkg/kv"
)

type countingLookup struct {
	calls int
	keys  map[string]apikey.Key // keyed by CacheID
	err   error
}

func (l *countingLookup) BySecret(ctx context.Context, tenantID, secret string) (apikey.Key, error) {
	l.calls++
	if l.err != nil {
		return apikey.Key{}, l.err
	}
	k, ok := l.keys[apikey.CacheID(tenantID, secret)]
	if !ok {
		return apikey.Key{}, apikey.ErrKeyNotFound
	}
	return k, nil
}

func newKeyCache() *cache.Cache[apikey.Key] {
	return cache.New[apikey.Key](kv.NewMemoryStore(), apikey.CachePrefix)
}

func TestResolveFetchesAndCaches(t *testing.T) {
	ctx := context.Background()
	want := apikey.Key{ID: "k1", TenantID: "acme", Name: "ci", Secret: "s3cret", Roles: []string{"editor"}}
	lookup := &countingLookup{keys: map[string]apikey.Key{
		apikey.CacheID("acme", "s3cret"): want,
	}}
	svc := apikey.NewService(newKeyCache(), lookup)

	got, err := svc.Resolve(ctx, "acme", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, lookup.calls)

	got, err = svc.Resolve(ctx, "acme", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, lookup.calls, "second resolve must be a cache hit")
}

func TestResolveTenantsDoNotCollide(t *testing.T) {
	ctx := context.Background()
	lookup := &countingLookup{keys: map[string]apikey.Key{
		apikey.CacheID("acme", "shared"):   {ID: "k1", TenantID: "acme", Secret: "shared"},
		apikey.CacheID("globex", "shared"): {ID: "k2", TenantID: "globex", Secret: "shared"},
	}}
	svc := apikey.NewService(newKeyCache(), lookup)

	a, err := svc.Resolve(ctx, "acme", "shared")
	require.NoError(t, err)
	b, err := svc.Resolve(ctx, "globex", "shared")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestResolveNotFound(t *testing.T) {
	svc := apikey.NewService(newKeyCache(), &countingLookup{keys: map[string]apikey.Key{}})

	_, err := svc.Resolve(context.Background(), "acme", "unknown")
	assert.ErrorIs(t, err, apikey.ErrKeyNotFound)
	assert.NotErrorIs(t, err, apikey.ErrKeyLookupFailed)
}

func TestResolveTransportFailure(t *testing.T) {
	remoteErr := errors.New("dial timeout")
	svc := apikey.NewService(newKeyCache(), &countingLookup{err: remoteErr})

	_, err := svc.Resolve(context.Background(), "acme", "s3cret")
	assert.ErrorIs(t, err, apikey.ErrKeyLookupFailed)
	assert.ErrorIs(t, err, remoteErr)
}

func TestInvalidationEvictsResolvedKey(t *testing.T) {
	ctx := context.Background()
	c := newKeyCache()
	key := apikey.Key{ID: "k1", TenantID: "acme", Secret: "s3cret"}
	lookup := &countingLookup{keys: map[string]apikey.Key{
		apikey.CacheID("acme", "s3cret"): key,
	}}
	svc := apikey.NewService(c, lookup)

	_, err := svc.Resolve(ctx, "acme", "s3cret")
	require.NoError(t, err)
	require.Equal(t, 1, lookup.calls)

	// An administrative removal arrives via the invalidation receiver.
	receiver := cache.NewReceiver(c, apikey.Identity, nil)
	require.NoError(t, receiver.Handle(ctx, cache.Notification[apikey.Key]{
		Kind:     cache.KindRemove,
		Payload:  key,
		TenantID: "acme",
	}))

	// The next resolve goes back to the source of truth.
	_, err = svc.Resolve(ctx, "acme", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, 2, lookup.calls)
}

func TestIdentityBlankOnPartialPayload(t *testing.T) {
	assert.Equal(t, "", apikey.Identity(apikey.Key{TenantID: "acme"}))
	assert.Equal(t, "", apikey.Identity(apikey.Key{Secret: "s3cret"}))
	assert.Equal(t, "acme:s3cret", apikey.Identity(apikey.Key{TenantID: "acme", Secret: "s3cret"}))
}
