package tenant

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/tenantcore/pkg/cache"
	"github.com/dmitrymomot/tenantcore/pkg/logger"
)

// Directory resolves tenant ids to tenant records, fronting the remote
// Lookup with the shared distributed cache.
type Directory struct {
	cache  *cache.Cache[Tenant]
	lookup Lookup
	log    *slog.Logger
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*Directory)

// WithDirectoryLogger sets the logger used for resolution outcomes.
func WithDirectoryLogger(log *slog.Logger) DirectoryOption {
	return func(d *Directory) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDirectory creates a directory over the given cache and remote lookup.
// The cache is expected to be created with CachePrefix; tenants change rarely
// so a long or absent TTL is the usual configuration.
func NewDirectory(c *cache.Cache[Tenant], lookup Lookup, opts ...DirectoryOption) *Directory {
	d := &Directory{
		cache:  c,
		lookup: lookup,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resolve returns the tenant record for id. Cache hits return immediately;
// misses fetch from the remote lookup and populate the cache.
//
// Failures are classified here and nowhere else: ErrTenantNotFound for an
// absent tenant (logged at info, it is a client-attributable condition),
// ErrTenantLookupFailed for everything else (logged at error).
func (d *Directory) Resolve(ctx context.Context, id string) (Tenant, error) {
	if strings.TrimSpace(id) == "" {
		return Tenant{}, ErrInvalidIdentifier
	}

	t, err := d.cache.GetOrFetch(ctx, id, func(ctx context.Context) (Tenant, error) {
		return d.lookup.ByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			d.log.InfoContext(ctx, "tenant not found", logger.TenantID(id))
			return Tenant{}, ErrTenantNotFound
		}
		d.log.ErrorContext(ctx, "tenant lookup failed", logger.TenantID(id), logger.Error(err))
		return Tenant{}, errors.Join(ErrTenantLookupFailed, err)
	}
	return t, nil
}
