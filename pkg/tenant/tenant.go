package tenant

import "context"

// CachePrefix namespaces tenant entries in the shared cache store.
const CachePrefix = "tenant"

// Tenant is an isolated logical customer of the platform. The ID is stable
// and immutable; Properties carry free-form multi-valued settings the same
// way url.Values does.
type Tenant struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Properties map[string][]string `json:"properties,omitempty"`
}

// Property returns the first value for the named property, or "" when unset.
func (t Tenant) Property(name string) string {
	if vs := t.Properties[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Lookup loads tenant records from the source of truth, typically a remote
// tenant service. Implementations must return ErrTenantNotFound (possibly
// wrapped) when no tenant matches the id.
type Lookup interface {
	ByID(ctx context.Context, id string) (Tenant, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, id string) (Tenant, error)

func (f LookupFunc) ByID(ctx context.Context, id string) (Tenant, error) { return f(ctx, id) }
