// Package session holds the opaque session key type and its Redis-backed
// store.
//
// # Design
//
// A session key is a 64-character alphanumeric string drawn from a
// cryptographic source; it carries no embedded claims and means nothing
// without the store. The store maps key -> user id with a TTL, refreshed
// on every successful read so active sessions slide forward and idle ones
// expire.
//
// Absence and failure are distinct outcomes: a missing key surfaces as
// redis.Nil so callers can tell "no such session" from "Redis is down".
//
// # What this package must NOT do
//
//   - Interpret the stored value; it is an opaque string owned by callers.
//   - Log session keys.
//   - Import sessauth or any sibling package.
package session
