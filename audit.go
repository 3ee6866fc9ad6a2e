package sessauth

import (
	"context"
	"time"

	"github.com/mreznik/sessauth/internal/audit"
)

const (
	// EventLoginSuccess is an exported constant or variable used by the authentication engine.
	EventLoginSuccess = "login.success"
	// EventLoginFailure is an exported constant or variable used by the authentication engine.
	EventLoginFailure = "login.failure"
	// EventSessionCreated is an exported constant or variable used by the authentication engine.
	EventSessionCreated = "session.created"
	// EventResolveRejected is an exported constant or variable used by the authentication engine.
	EventResolveRejected = "resolve.rejected"
	// EventLogout is an exported constant or variable used by the authentication engine.
	EventLogout = "logout"
)

// emitAudit records an authentication outcome. Session keys and password
// material never appear on events; errText carries the sentinel error
// string only.
func (e *Engine) emitAudit(ctx context.Context, eventType, userID string, success bool, errText string) {
	if e.audit == nil {
		return
	}

	e.audit.Emit(ctx, audit.Event{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Error:     errText,
	})
}

// AuditDropped reports how many audit events were discarded because the
// audit buffer was full.
func (e *Engine) AuditDropped() uint64 {
	return e.audit.Dropped()
}
