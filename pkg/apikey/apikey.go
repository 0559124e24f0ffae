package apikey

import "context"

// CachePrefix namespaces API-key entries in the shared cache store.
const CachePrefix = "apikey"

// Key is an API key record. Roles holds assigned role codes, not yet
// expanded through the role hierarchy.
type Key struct {
	ID       string   `json:"id"`
	TenantID string   `json:"tenant_id"`
	Name     string   `json:"name"`
	Secret   string   `json:"secret"`
	Roles    []string `json:"roles,omitempty"`
}

// CacheID derives the cache identity of a key from its (tenant, secret)
// pair. Both the lookup path and the invalidation receiver must use it so
// they agree on which entry a mutation touches.
func CacheID(tenantID, secret string) string {
	return tenantID + ":" + secret
}

// Identity is the receiver identity function for Key change notifications.
// It returns "" for payloads missing either half of the pair, which the
// receiver treats as a malformed message.
func Identity(k Key) string {
	if k.TenantID == "" || k.Secret == "" {
		return ""
	}
	return CacheID(k.TenantID, k.Secret)
}

// Lookup loads key records from the source of truth. Implementations must
// return ErrKeyNotFound (possibly wrapped) when no key matches.
type Lookup interface {
	BySecret(ctx context.Context, tenantID, secret string) (Key, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, tenantID, secret string) (Key, error)

func (f LookupFunc) BySecret(ctx context.Context, tenantID, secret string) (Key, error) {
	return f(ctx, tenantID, secret)
}
