package rbac

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fintrack/fintrack/internal/platform/httpx"
	"github.com/fintrack/fintrack/internal/shared"
)

// PermissionSource resolves the effective permission set of a user.
type PermissionSource interface {
	EffectivePermissions(ctx context.Context, userID string) ([]string, error)
}

// Middleware applies the authorization contract to API endpoints. Every
// protected endpoint carries its own check, independent of the page
// guard: an endpoint must not trust that only authorized pages call it.
type Middleware struct {
	Resolver PermissionSource
	Logger   *slog.Logger
}

// RequireSession rejects requests without an authenticated session.
func (m Middleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if !sess.Authenticated() {
			httpx.RespondError(w, httpx.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAll ensures the current user holds every listed permission.
// The session check always precedes permission resolution, and both
// must pass before the wrapped handler touches any data.
func (m Middleware) RequireAll(required ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			if !sess.Authenticated() {
				httpx.RespondError(w, httpx.ErrUnauthenticated)
				return
			}
			if len(required) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			held, err := m.Resolver.EffectivePermissions(r.Context(), sess.User())
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("resolve permissions", slog.Any("error", err))
				}
				httpx.RespondError(w, err)
				return
			}
			dec := Evaluate(Input{
				UserID:      sess.User(),
				Required:    required,
				Permissions: held,
			})
			if dec.State != StateAllowed {
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
