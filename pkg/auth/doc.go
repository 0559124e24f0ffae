// Package auth authenticates callers and produces a Principal carrying the
// caller's identity and effective roles.
//
// Two credential paths produce the same Principal shape:
//
//   - Gate validates API-key credentials of the form "<tenantId>.<secret>".
//     The inter-service master secret short-circuits to an administrative
//     principal without any lookups; user keys resolve through the cached
//     API-key service and have their roles expanded through the role
//     hierarchy.
//
//   - TokenAuthenticator validates HS256 JSON Web Tokens carrying the
//     subject, tenant id and assigned role claims.
//
// Both paths deliberately collapse every failure into ErrInvalidCredential:
// an attacker probing credentials learns nothing about whether the tenant,
// key or token was the problem. The internal distinction survives only in
// log severity (absent key at info, transport failures at error).
package auth
