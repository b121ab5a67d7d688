// Package redissink publishes metrics snapshots to Redis so that other
// processes can read the latest one or follow them live.
//
// Each publish overwrites a single key with a TTL and, when a channel is
// configured, announces the same payload on it. Both go out in one
// MULTI/EXEC round trip. Nothing is appended, so Redis never holds history.
package redissink
