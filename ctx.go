package sessauth

import (
	"github.com/google/uuid"

	"github.com/mreznik/sessauth/session"
)

// Ctx is the resolved identity of an authenticated request: the user the
// session belongs to plus the session key it was resolved from. A Ctx can
// only be obtained through [NewCtx], so holding one proves the zero-value
// user id was rejected at construction.
type Ctx struct {
	userID uuid.UUID
	key    session.Key
}

// NewCtx describes the newctx operation and its observable behavior.
//
// NewCtx may return an error when input validation, dependency calls, or security checks fail.
// NewCtx does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewCtx(userID uuid.UUID, key session.Key) (Ctx, error) {
	if userID == uuid.Nil {
		return Ctx{}, ErrCtxCreate
	}

	return Ctx{userID: userID, key: key}, nil
}

// UserID returns the authenticated user's identifier.
func (c Ctx) UserID() uuid.UUID {
	return c.userID
}

// SessionKey returns the key of the session this identity was resolved
// from. Logout uses it to remove exactly this session.
func (c Ctx) SessionKey() session.Key {
	return c.key
}
