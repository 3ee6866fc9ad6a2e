package sessauth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mreznik/sessauth/internal/audit"
	"github.com/mreznik/sessauth/password"
	"github.com/mreznik/sessauth/session"
)

// Engine is the root object of the authentication layer. It owns the
// session store, the password pool, and the credential source, and exposes
// the three request-path operations: Login, Resolve, Logout.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config Config

	sessions *session.Store
	pool     *password.Pool
	users    UserStore

	audit   *audit.Dispatcher
	metrics *Metrics
}

// Login validates credentials and, on success, creates a session and
// returns its key together with the resolved identity. Failure is always
// [ErrInvalidCredentials] whether the account is missing or the password
// is wrong; the two paths cost the same wall-clock time. Infrastructure
// failures surface as [ErrUserStoreUnavailable] or
// [ErrSessionCreationFailed] wraps instead.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, identifier, passwd string) (session.Key, Ctx, error) {
	userID, err := e.validateCredentials(ctx, identifier, passwd)
	if err != nil {
		e.metrics.Inc(MetricLoginFailure)
		e.emitAudit(ctx, EventLoginFailure, "", false, err.Error())
		return "", Ctx{}, err
	}

	key := session.Generate()

	created, err := e.sessions.PutIfAbsent(ctx, key, userID.String(), e.config.Session.TTL)
	if err != nil {
		e.metrics.Inc(MetricSessionStoreError)
		e.emitAudit(ctx, EventLoginFailure, userID.String(), false, err.Error())
		return "", Ctx{}, fmt.Errorf("%w: %v", ErrSessionCreationFailed, err)
	}
	if !created {
		// A 62^64 keyspace makes collision practically impossible; a hit
		// means something is wrong upstream, so fail rather than retry.
		e.metrics.Inc(MetricSessionStoreError)
		e.emitAudit(ctx, EventLoginFailure, userID.String(), false, ErrSessionCreationFailed.Error())
		return "", Ctx{}, ErrSessionCreationFailed
	}

	c, err := NewCtx(userID, key)
	if err != nil {
		return "", Ctx{}, err
	}

	e.metrics.Inc(MetricLoginSuccess)
	e.metrics.Inc(MetricSessionCreated)
	e.emitAudit(ctx, EventLoginSuccess, userID.String(), true, "")
	e.emitAudit(ctx, EventSessionCreated, userID.String(), true, "")

	return key, c, nil
}

// validateCredentials resolves identifier to a stored hash and verifies
// passwd against it. When no account matches, verification still runs
// against a fixed dummy hash so the miss path costs the same as the hit
// path. Every failure mode except infrastructure errors collapses into
// ErrInvalidCredentials.
func (e *Engine) validateCredentials(ctx context.Context, identifier, passwd string) (uuid.UUID, error) {
	userID := uuid.Nil
	storedHash := password.DummyHash

	record, err := e.users.FindCredentials(ctx, identifier)
	switch {
	case err == nil:
		userID = record.UserID
		storedHash = record.PasswordHash
	case errors.Is(err, ErrUserNotFound):
		// Keep the dummy hash; the verification below still runs.
	default:
		return uuid.Nil, fmt.Errorf("%w: %v", ErrUserStoreUnavailable, err)
	}

	ok, err := e.pool.Verify(ctx, passwd, storedHash)
	if err != nil {
		if ctx.Err() != nil {
			return uuid.Nil, err
		}
		// Either the candidate was rejected before derivation (length
		// cap) or the stored hash did not parse. The caller only learns
		// that the login failed.
		log.Printf("sessauth: password verification failed: %v", err)
		return uuid.Nil, ErrInvalidCredentials
	}
	if !ok || userID == uuid.Nil {
		return uuid.Nil, ErrInvalidCredentials
	}

	return userID, nil
}

// Resolve turns a raw cookie value into an authenticated identity. The
// lookup refreshes the session TTL, so resolving keeps the session alive.
// Failures are precise: [ErrTokenMalformed] for an unusable value,
// [ErrSessionNotFound] for an absent or expired session, [ErrSessionAccess]
// when the store itself failed, [ErrCtxCreate] when the stored value is
// not a usable user id.
//
// Resolve may return an error when input validation, dependency calls, or security checks fail.
// Resolve does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Resolve(ctx context.Context, rawKey string) (Ctx, error) {
	key, err := session.ParseKey(rawKey)
	if err != nil {
		e.metrics.Inc(MetricResolveFailure)
		e.emitAudit(ctx, EventResolveRejected, "", false, ErrTokenMalformed.Error())
		return Ctx{}, ErrTokenMalformed
	}

	val, err := e.sessions.GetRefresh(ctx, key, e.config.Session.TTL)
	if errors.Is(err, redis.Nil) {
		e.metrics.Inc(MetricResolveFailure)
		e.metrics.Inc(MetricSessionNotFound)
		e.emitAudit(ctx, EventResolveRejected, "", false, ErrSessionNotFound.Error())
		return Ctx{}, ErrSessionNotFound
	}
	if err != nil {
		e.metrics.Inc(MetricResolveFailure)
		e.metrics.Inc(MetricSessionStoreError)
		e.emitAudit(ctx, EventResolveRejected, "", false, ErrSessionAccess.Error())
		return Ctx{}, fmt.Errorf("%w: %v", ErrSessionAccess, err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		// The store held a value this engine could not have written.
		log.Printf("sessauth: session payload is not a user id: %v", err)
		e.metrics.Inc(MetricResolveFailure)
		e.emitAudit(ctx, EventResolveRejected, "", false, ErrCtxCreate.Error())
		return Ctx{}, ErrCtxCreate
	}

	c, err := NewCtx(userID, key)
	if err != nil {
		e.metrics.Inc(MetricResolveFailure)
		e.emitAudit(ctx, EventResolveRejected, "", false, err.Error())
		return Ctx{}, err
	}

	e.metrics.Inc(MetricResolveSuccess)

	return c, nil
}

// Logout removes the session named by c. Removing a session that already
// expired is a success; logout is idempotent.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Logout(ctx context.Context, c Ctx) error {
	if err := e.sessions.Delete(ctx, c.SessionKey()); err != nil {
		e.metrics.Inc(MetricSessionStoreError)
		e.emitAudit(ctx, EventLogout, c.UserID().String(), false, err.Error())
		return fmt.Errorf("%w: %v", ErrSessionAccess, err)
	}

	e.metrics.Inc(MetricLogout)
	e.emitAudit(ctx, EventLogout, c.UserID().String(), true, "")

	return nil
}

// HashPassword applies the submission policy and returns the PHC-encoded
// hash of passwd for storage. Policy violations return
// [ErrPasswordPolicy]; this is the only place policy is enforced, login
// candidates are never policy-checked.
//
// HashPassword may return an error when input validation, dependency calls, or security checks fail.
// HashPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) HashPassword(ctx context.Context, passwd string) (string, error) {
	if !password.IsStrong(passwd) {
		return "", ErrPasswordPolicy
	}

	return e.pool.Hash(ctx, passwd)
}

// SessionTTL returns the configured idle session lifetime.
func (e *Engine) SessionTTL() time.Duration {
	return e.config.Session.TTL
}

// CookieConfig returns the cookie settings middleware should apply.
func (e *Engine) CookieConfig() CookieConfig {
	return e.config.Cookie
}

// Ping verifies session store connectivity and reports round-trip latency.
func (e *Engine) Ping(ctx context.Context) (time.Duration, error) {
	return e.sessions.Ping(ctx)
}

// MetricsSnapshot returns a point-in-time copy of all engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

// Close flushes and stops the audit dispatcher. The engine must not be
// used after Close.
func (e *Engine) Close() {
	e.audit.Close()
}
