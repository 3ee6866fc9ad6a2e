package sessauth

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/mreznik/sessauth/internal/audit"
)

// CredentialRecord defines a public type used by sessauth APIs.
//
// CredentialRecord instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CredentialRecord struct {
	UserID       uuid.UUID
	PasswordHash string
}

// UserStore supplies credential records to the engine. Implementations
// must return [ErrUserNotFound] (possibly wrapped) when no account matches
// identifier, and any other error only for infrastructure failure. The
// engine treats the two cases differently: a missing account still runs a
// full password verification, an infrastructure failure aborts the login.
type UserStore interface {
	FindCredentials(ctx context.Context, identifier string) (CredentialRecord, error)
}

// Credentials defines a public type used by sessauth APIs.
//
// Credentials instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Credentials struct {
	Identifier string
	Password   string
}

/*
====================================
AUDIT RE-EXPORTS
====================================
*/

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = audit.Event

// AuditSink receives [AuditEvent] values from the engine's audit
// dispatcher.
type AuditSink = audit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = audit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = audit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// io.Writer, one object per line.
type JSONWriterSink = audit.JSONWriterSink

// NewChannelSink describes the newchannelsink operation and its observable behavior.
//
// NewChannelSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONWriterSink describes the newjsonwritersink operation and its observable behavior.
//
// NewJSONWriterSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}
