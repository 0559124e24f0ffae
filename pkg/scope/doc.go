// Package scope manages per-tenant dependency graphs.
//
// Container owns a base (tenant-agnostic) scope and lazily builds one child
// scope per tenant on first access, memoizing it for the container's
// lifetime. The read path is a plain RLock lookup; construction happens under
// a write lock with a re-check, so concurrent first access for the same
// tenant builds the scope exactly once.
//
// A failed factory call propagates to the caller and leaves the registry
// untouched, so the next access retries construction.
package scope
