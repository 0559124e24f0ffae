package apikey

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/tenantcore/pkg/cache"
	"github.com/dmitrymomot/tenantcore/pkg/logger"
)

// Service resolves (tenant, secret) pairs to key records, fronting the
// remote Lookup with the shared distributed cache.
type Service struct {
	cache  *cache.Cache[Key]
	lookup Lookup
	log    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger used for resolution outcomes.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a service over the given cache and remote lookup.
// The cache is expected to be created with CachePrefix.
func NewService(c *cache.Cache[Key], lookup Lookup, opts ...ServiceOption) *Service {
	s := &Service{
		cache:  c,
		lookup: lookup,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the key record for the (tenant, secret) pair. Cache misses
// fetch from the remote lookup and populate the cache.
//
// Classification mirrors the tenant directory: ErrKeyNotFound for an absent
// key (logged at info), ErrKeyLookupFailed for everything else (logged at
// error). Callers that must not leak the distinction downgrade both to a
// generic failure.
func (s *Service) Resolve(ctx context.Context, tenantID, secret string) (Key, error) {
	k, err := s.cache.GetOrFetch(ctx, CacheID(tenantID, secret), func(ctx context.Context) (Key, error) {
		return s.lookup.BySecret(ctx, tenantID, secret)
	})
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			s.log.InfoContext(ctx, "api key not found", logger.TenantID(tenantID))
			return Key{}, ErrKeyNotFound
		}
		s.log.ErrorContext(ctx, "api key lookup failed", logger.TenantID(tenantID), logger.Error(err))
		return Key{}, errors.Join(ErrKeyLookupFailed, err)
	}
	return k, nil
}
