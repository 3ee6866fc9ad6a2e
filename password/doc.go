// Package password provides Argon2id hashing and verification for sessauth.
//
// # Design
//
// Hashes are emitted in a PHC-style self-describing string
// ($argon2id$v=19$m=...,t=...,p=...$salt$digest). Verification re-derives
// the digest with the parameters embedded in the stored string, never with
// the currently configured ones, so parameter changes do not invalidate
// existing hashes. [Argon2.NeedsUpgrade] reports when a stored hash is
// weaker than the active configuration.
//
// Hashing is deliberately slow and memory-hard. Request-path callers must
// go through [Pool], which bounds the number of concurrent derivations and
// applies backpressure instead of letting Argon2 work pile up.
//
// # What this package must NOT do
//
//   - Log or otherwise emit passwords, salts, or hash strings.
//   - Enforce password policy inside Hash/Verify; policy lives in [IsStrong].
//   - Import sessauth or any sibling package.
package password
