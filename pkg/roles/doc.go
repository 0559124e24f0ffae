// Package roles resolves assigned role codes into the full set of roles they
// imply.
//
// Roles form a forest: each role optionally points at one upper role, and a
// caller granted an upper role implicitly receives every role beneath it.
// Expand walks down the hierarchy from each assigned code collecting all
// descendants. The walk is iterative with a visited set, so a cycle in the
// catalog terminates instead of recursing forever.
//
// The catalog is supplied per call by a Provider and treated as immutable for
// the duration of the expansion.
package roles
