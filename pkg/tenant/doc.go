// Package tenant resolves tenant identifiers to tenant records and
// propagates the resolved tenant through the request context.
//
// Directory is the resolution entry point: it fronts a remote Lookup
// collaborator with the shared distributed cache, so steady-state resolution
// costs one cache read. Lookup failures are classified once, at this
// boundary: a missing tenant surfaces as ErrTenantNotFound (an expected,
// client-attributable condition), everything else as ErrTenantLookupFailed.
//
// The package also ships a header-based Resolver, HTTP middleware that puts
// the resolved tenant into the request context, and a MongoDB-backed Lookup
// for services that own the tenant collection.
package tenant
