package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant matches the identifier.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantLookupFailed is returned when the remote lookup fails for any
	// reason other than the tenant being absent.
	ErrTenantLookupFailed = errors.New("tenant lookup failed")

	// ErrInvalidIdentifier is returned when the identifier is blank.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
