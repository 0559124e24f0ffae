// Package cache implements the distributed read-through cache shared by all
// service instances.
//
// Cache[T] wraps a kv.Store with a typed JSON entry envelope carrying the
// creation timestamp and an optional TTL. Expiration is lazy: entries are
// checked on read and expired ones are deleted from the store asynchronously.
// A TTL of zero means the entry never expires.
//
// GetOrFetch is the single cache-aside operation used by every lookup path:
// consult the cache, on miss call the supplied fetch function against the
// source of truth and write the result back.
//
// Coherence across processes is event-driven: mutators publish a
// Notification via an Announcer, and every instance's Receiver applies it to
// the local view of the shared store (write-through on Modify, evict on
// Remove). Notifications carry no ordering metadata; the design tolerates a
// narrow last-writer-wins staleness window because any stale miss re-fetches
// from the source of truth.
package cache
