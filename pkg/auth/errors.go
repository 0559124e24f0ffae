package auth

import "errors"

var (
	// ErrNoCredential is returned when no credential was presented.
	ErrNoCredential = errors.New("no credential")

	// ErrInvalidCredential is the single failure callers observe for every
	// malformed, unknown or unverifiable credential.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrMissingSigningKey is returned when a token authenticator is created
	// without a signing key.
	ErrMissingSigningKey = errors.New("missing signing key")

	// ErrNoPrincipalInContext is returned when no principal is found in context.
	ErrNoPrincipalInContext = errors.New("no principal in context")
)
