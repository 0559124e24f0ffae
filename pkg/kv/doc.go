// Package kv defines the key/value store abstraction used by the distributed
// cache layer, together with two implementations: a Redis-backed store for
// multi-process deployments and an in-memory store for tests and
// single-process setups.
//
// The Store interface is deliberately small: byte values in, byte values out,
// with an optional per-key TTL enforced by the store itself. Everything above
// it (typed entries, lazy expiration, cache-aside) lives in pkg/cache.
package kv
