// Package audit implements async event dispatching for security-relevant
// authentication operations.
//
// Events describe login, resolution, and logout outcomes. They never carry
// passwords, hashes, or session keys; a session is only ever referenced by
// the user it belongs to.
//
// The dispatcher decouples the request path from sink latency: Emit hands
// the event to a buffered channel and returns, a single goroutine forwards
// to the sink. With DropIfFull set, a saturated buffer drops the event and
// counts it instead of blocking the caller.
package audit
