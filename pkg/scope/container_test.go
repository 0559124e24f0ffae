package scope_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantcore/pkg/scope"
)

type testScope struct {
	tenantID string
	closed   bool
}

func TestGetReturnsBaseForEmptyTenant(t *testing.T) {
	base := &testScope{}
	c := scope.NewContainer(base, func(tenantID string) (*testScope, error) {
		return &testScope{tenantID: tenantID}, nil
	})

	got, err := c.Get("")
	require.NoError(t, err)
	assert.Same(t, base, got)
}

func TestGetMemoizesPerTenant(t *testing.T) {
	var calls int
	c := scope.NewContainer(&testScope{}, func(tenantID string) (*testScope, error) {
		calls++
		return &testScope{tenantID: tenantID}, nil
	})

	first, err := c.Get("acme")
	require.NoError(t, err)
	second, err := c.Get("acme")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)

	other, err := c.Get("globex")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, c.Len())
}

func TestGetConcurrentFirstAccess(t *testing.T) {
	const goroutines = 50

	var calls atomic.Int32
	c := scope.NewContainer(&testScope{}, func(tenantID string) (*testScope, error) {
		calls.Add(1)
		return &testScope{tenantID: tenantID}, nil
	})

	start := make(chan struct{})
	results := make([]*testScope, goroutines)

	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			s, err := c.Get("acme")
			require.NoError(t, err)
			results[i] = s
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "factory must run exactly once")
	for _, s := range results {
		assert.Same(t, results[0], s)
	}
}

func TestGetFactoryErrorDoesNotPoisonRegistry(t *testing.T) {
	factoryErr := errors.New("config missing")
	fail := true
	c := scope.NewContainer(&testScope{}, func(tenantID string) (*testScope, error) {
		if fail {
			return nil, factoryErr
		}
		return &testScope{tenantID: tenantID}, nil
	})

	_, err := c.Get("acme")
	assert.ErrorIs(t, err, factoryErr)
	assert.Equal(t, 0, c.Len())

	// A later call retries construction.
	fail = false
	s, err := c.Get("acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", s.tenantID)
}

func TestCloseTearsDownAllScopes(t *testing.T) {
	base := &testScope{}
	c := scope.NewContainer(base,
		func(tenantID string) (*testScope, error) {
			return &testScope{tenantID: tenantID}, nil
		},
		scope.WithCloser(func(s *testScope) error {
			s.closed = true
			return nil
		}),
	)

	acme, err := c.Get("acme")
	require.NoError(t, err)
	globex, err := c.Get("globex")
	require.NoError(t, err)

	require.NoError(t, c.Close())

	assert.True(t, acme.closed)
	assert.True(t, globex.closed)
	assert.True(t, base.closed, "base scope is closed last")

	_, err = c.Get("acme")
	assert.ErrorIs(t, err, scope.ErrContainerClosed)
}

func TestCloseCollectsErrors(t *testing.T) {
	closeErr := errors.New("teardown failed")
	c := scope.NewContainer(&testScope{},
		func(tenantID string) (*testScope, error) {
			return &testScope{tenantID: tenantID}, nil
		},
		scope.WithCloser(func(s *testScope) error {
			if s.tenantID == "acme" {
				return closeErr
			}
			return nil
		}),
	)

	_, err := c.Get("acme")
	require.NoError(t, err)
	_, err = c.Get("globex")
	require.NoError(t, err)

	assert.ErrorIs(t, c.Close(), closeErr)
}
