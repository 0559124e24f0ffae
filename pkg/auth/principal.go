package auth

import "slices"

// Principal is an authenticated caller: identity plus effective roles after
// hierarchy expansion.
type Principal struct {
	// Name is the display identity: the API-key name, the token subject, or
	// the master identity for inter-service calls.
	Name string

	// TenantID scopes the principal. The master principal keeps the
	// well-known tenant segment from its credential.
	TenantID string

	// Roles is the expanded role closure, not the assigned codes.
	Roles []string

	// Master marks the inter-service administrative principal, which
	// bypasses role checks entirely.
	Master bool
}

// HasRole reports whether the principal carries the role. The master
// principal implicitly carries every role.
func (p Principal) HasRole(role string) bool {
	if p.Master {
		return true
	}
	return slices.Contains(p.Roles, role)
}
