package scope

import (
	"errors"
	"fmt"
	"sync"
)

// Factory builds the dependency graph for one tenant. It is called at most
// once per tenant id for the lifetime of a container.
type Factory[S any] func(tenantID string) (S, error)

// Container registers per-tenant scopes keyed by tenant id on top of a base
// scope. All methods are safe for concurrent use.
type Container[S any] struct {
	mu      sync.RWMutex
	base    S
	scopes  map[string]S
	factory Factory[S]
	closer  func(S) error
	closed  bool
}

// Option configures a Container.
type Option[S any] func(*Container[S])

// WithCloser sets the teardown function Close applies to the base scope and
// every registered child scope.
func WithCloser[S any](closer func(S) error) Option[S] {
	return func(c *Container[S]) { c.closer = closer }
}

// NewContainer creates a container around the base scope. factory is invoked
// lazily on first access per tenant.
func NewContainer[S any](base S, factory Factory[S], opts ...Option[S]) *Container[S] {
	c := &Container[S]{
		base:    base,
		scopes:  make(map[string]S),
		factory: factory,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the scope for tenantID, constructing it on first access. An
// empty tenant id returns the base scope, used early in request processing
// before tenant resolution completes.
//
// A factory error propagates to the caller and does not poison the registry:
// the tenant id stays absent so a later call retries construction.
func (c *Container[S]) Get(tenantID string) (S, error) {
	var zero S

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return zero, ErrContainerClosed
	}
	if tenantID == "" {
		base := c.base
		c.mu.RUnlock()
		return base, nil
	}
	if s, ok := c.scopes[tenantID]; ok {
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return zero, ErrContainerClosed
	}
	// Re-check under the write lock: another goroutine may have built the
	// scope while we were waiting.
	if s, ok := c.scopes[tenantID]; ok {
		return s, nil
	}

	s, err := c.factory(tenantID)
	if err != nil {
		return zero, fmt.Errorf("construct scope for tenant %q: %w", tenantID, err)
	}
	c.scopes[tenantID] = s
	return s, nil
}

// Len reports the number of registered tenant scopes.
func (c *Container[S]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.scopes)
}

// Close tears down every registered tenant scope and then the base scope.
// Intended to be called once at shutdown; subsequent calls are no-ops.
func (c *Container[S]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.closer == nil {
		clear(c.scopes)
		return nil
	}

	var errs []error
	for id, s := range c.scopes {
		if err := c.closer(s); err != nil {
			errs = append(errs, fmt.Errorf("close scope for tenant %q: %w", id, err))
		}
	}
	clear(c.scopes)

	if err := c.closer(c.base); err != nil {
		errs = append(errs, fmt.Errorf("close base scope: %w", err))
	}
	return errors.Join(errs...)
}
