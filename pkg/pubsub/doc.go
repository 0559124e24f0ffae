// Package pubsub provides the publish/subscribe transport used to fan out
// change notifications between service instances.
//
// Two implementations ship with the package: RedisBus rides on Redis pub/sub
// channels and is the production transport, MemoryBus is an in-process bus
// for tests and single-instance deployments.
//
// Delivery is at-least-once with no ordering metadata; consumers must be
// idempotent. Slow consumers have messages dropped rather than blocking the
// publisher, matching Redis pub/sub semantics.
package pubsub
