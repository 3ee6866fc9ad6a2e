package sessauth

import (
	"errors"
	"net/http"
	"time"
)

// Config defines a public type used by sessauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Session  SessionConfig
	Password PasswordConfig
	Cookie   CookieConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by sessauth APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	RedisPrefix string
	// TTL is the idle lifetime of a session. Every successful resolve
	// refreshes it, so a session only expires after TTL of inactivity.
	TTL time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines a public type used by sessauth APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Memory              uint32 // in KB
	Time                uint32
	Parallelism         uint8
	SaltLength          uint32
	KeyLength           uint32
	MaxPasswordBytes    int
	MaxConcurrentHashes int64
}

/*
====================================
COOKIE CONFIG
====================================
*/

// CookieConfig defines a public type used by sessauth APIs.
//
// CookieConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CookieConfig struct {
	Name     string
	Path     string
	Secure   bool
	SameSite http.SameSite
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by sessauth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by sessauth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{
			RedisPrefix: "sess",
			TTL:         30 * time.Minute,
		},
		Password: PasswordConfig{
			Memory:              15000,
			Time:                2,
			Parallelism:         1,
			SaltLength:          16,
			KeyLength:           32,
			MaxConcurrentHashes: 4,
		},
		Cookie: CookieConfig{
			Name:     "x-session",
			Path:     "/",
			Secure:   false,
			SameSite: http.SameSiteLaxMode,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// DefaultConfig returns the engine defaults. Callers may adjust fields
// before passing the result to [Builder.WithConfig].
func DefaultConfig() Config {
	return defaultConfig()
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	if c.Session.RedisPrefix == "" {
		return errors.New("Session.RedisPrefix must not be empty")
	}
	if c.Session.TTL <= 0 {
		return errors.New("Session.TTL must be positive")
	}
	if c.Cookie.Name == "" {
		return errors.New("Cookie.Name must not be empty")
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit.BufferSize must be positive when audit is enabled")
	}

	return nil
}
