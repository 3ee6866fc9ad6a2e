// Package middleware provides net/http integration for sessauth.
//
// [Resolver] runs on every request: it reads the session cookie, asks the
// engine for an identity, and attaches the outcome (identity or typed
// error) to the request context without rejecting anything. [RequireCtx]
// is the gate for protected routes; it reads the stored outcome and
// rejects requests that did not resolve. Splitting the two lets public
// routes observe "who is this, if anyone" while protected routes enforce.
//
// The resolver clears the cookie whenever a cookie was presented but did
// not resolve, so clients do not keep replaying a dead session key.
package middleware
