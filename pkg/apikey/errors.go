package apikey

import "errors"

var (
	// ErrKeyNotFound is returned when no API key matches the secret.
	ErrKeyNotFound = errors.New("api key not found")

	// ErrKeyLookupFailed is returned when the remote lookup fails for any
	// reason other than the key being absent.
	ErrKeyLookupFailed = errors.New("api key lookup failed")
)
