// Package sessauth provides a cookie-session authentication layer with
// opaque Redis-backed session keys and Argon2id password verification.
//
// Sessions are server-side: the cookie carries a 64-character random key
// and nothing else, identity lives in Redis under that key with a sliding
// TTL. Login verifies credentials in constant wall-clock time whether or
// not the account exists, then mints a session with a collision-checked
// write. Resolve turns the cookie value back into an identity and slides
// the TTL forward; Logout deletes the session and is idempotent.
//
// The package is designed for concurrent server workloads: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// sessauth is the public surface. It exposes [Engine], [Builder],
// [Config], [Ctx], and value types (MetricsSnapshot, AuditEvent). Session
// key handling and the Redis store live in the session sub-package,
// hashing in password, HTTP integration in middleware; audit dispatch is
// internal and never exported directly.
//
// # What this package must NOT do
//
//   - Embed claims, roles, or any user data in the session key.
//   - Reveal through error, timing, or audit surface whether an account
//     exists; credential failure is always [ErrInvalidCredentials].
//   - Log passwords, stored hashes, or session keys.
//
// # Performance contract
//
// Resolve is the hot path: one Redis round-trip (GETEX), no hashing.
// Login pays one Argon2id derivation plus one Redis round-trip; the
// derivation is bounded by the password pool so hashing load cannot
// exhaust the process.
package sessauth
