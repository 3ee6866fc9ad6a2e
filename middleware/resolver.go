package middleware

import (
	"context"
	"errors"
	"net/http"

	sessauth "github.com/mreznik/sessauth"
)

type ctxResultContextKey struct{}

// CtxResult is the outcome of identity resolution for one request:
// exactly one of Ctx or Err is meaningful.
type CtxResult struct {
	Ctx sessauth.Ctx
	Err error
}

// CtxResultFromContext returns the resolution outcome stored by
// [Resolver]. The second return is false when the resolver did not run.
func CtxResultFromContext(ctx context.Context) (CtxResult, bool) {
	res, ok := ctx.Value(ctxResultContextKey{}).(CtxResult)
	return res, ok
}

// Resolver resolves the session cookie on every request and stores the
// outcome in the request context. It never rejects; route handlers and
// [RequireCtx] decide what a failed resolution means. A cookie that was
// presented but did not resolve is cleared in the response, so clients
// stop replaying dead keys; an absent cookie clears nothing.
func Resolver(engine *sessauth.Engine) func(http.Handler) http.Handler {
	cookieCfg := engine.CookieConfig()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := resolve(engine, cookieCfg.Name, r)

			if result.Err != nil && !errors.Is(result.Err, sessauth.ErrTokenNotInCookie) {
				ClearSessionCookie(w, cookieCfg)
			}

			ctx := context.WithValue(r.Context(), ctxResultContextKey{}, result)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolve(engine *sessauth.Engine, cookieName string, r *http.Request) CtxResult {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return CtxResult{Err: sessauth.ErrTokenNotInCookie}
	}

	c, err := engine.Resolve(r.Context(), cookie.Value)
	if err != nil {
		return CtxResult{Err: err}
	}

	return CtxResult{Ctx: c}
}
