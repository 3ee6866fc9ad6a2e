package sessauth

import "errors"

var (
	// ErrInvalidCredentials is an exported constant or variable used by the authentication engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is an exported constant or variable used by the authentication engine.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserStoreUnavailable is an exported constant or variable used by the authentication engine.
	ErrUserStoreUnavailable = errors.New("user store unavailable")
	// ErrTokenNotInCookie is an exported constant or variable used by the authentication engine.
	ErrTokenNotInCookie = errors.New("session token not in cookie")
	// ErrTokenMalformed is an exported constant or variable used by the authentication engine.
	ErrTokenMalformed = errors.New("session token malformed")
	// ErrSessionNotFound is an exported constant or variable used by the authentication engine.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionAccess is an exported constant or variable used by the authentication engine.
	ErrSessionAccess = errors.New("session store access failed")
	// ErrSessionCreationFailed is an exported constant or variable used by the authentication engine.
	ErrSessionCreationFailed = errors.New("session creation failed")
	// ErrCtxCreate is an exported constant or variable used by the authentication engine.
	ErrCtxCreate = errors.New("request context creation failed")
	// ErrPasswordPolicy is an exported constant or variable used by the authentication engine.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
