package middleware

import (
	"errors"
	"net/http"

	sessauth "github.com/mreznik/sessauth"
)

// RequireCtx gates protected routes on the outcome stored by [Resolver].
// Requests without a resolved identity get 401; a session store outage
// gets 503 because the client's session may still be valid. RequireCtx
// must run inside a [Resolver] chain; without one every request is
// rejected.
func RequireCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result, ok := CtxResultFromContext(r.Context())
		if !ok || result.Err != nil {
			if ok && errors.Is(result.Err, sessauth.ErrSessionAccess) {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
