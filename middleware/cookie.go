package middleware

import (
	"net/http"
	"time"

	sessauth "github.com/mreznik/sessauth"
	"github.com/mreznik/sessauth/session"
)

// SetSessionCookie writes the session cookie for key with a lifetime of
// ttl. The cookie is always HttpOnly; everything else follows cfg.
func SetSessionCookie(w http.ResponseWriter, cfg sessauth.CookieConfig, key session.Key, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Name,
		Value:    string(key),
		Path:     cookiePath(cfg),
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
	})
}

// ClearSessionCookie instructs the client to drop the session cookie.
func ClearSessionCookie(w http.ResponseWriter, cfg sessauth.CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Name,
		Value:    "",
		Path:     cookiePath(cfg),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
	})
}

func cookiePath(cfg sessauth.CookieConfig) string {
	if cfg.Path == "" {
		return "/"
	}
	return cfg.Path
}
