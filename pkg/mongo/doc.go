// Package mongo manages MongoDB connections for services that own a
// document collection directly, such as the tenant store behind
// tenant.MongoLookup.
//
// Configuration is environment-driven and connection establishment retries
// to absorb transient startup failures. A Healthcheck helper integrates with
// readiness probes.
package mongo
