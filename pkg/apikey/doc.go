// Package apikey resolves API-key secrets to key records.
//
// Service fronts the remote Lookup with the shared distributed cache, keyed
// per (tenant, secret) pair so identical secrets under different tenants
// never collide. Administrative mutations invalidate entries through the
// cache notification machinery; Announce helpers for that live here so the
// write path and the invalidation path agree on the cache identity.
package apikey
