package rbac

import (
	"log/slog"
	"net/http"

	"github.com/fintrack/fintrack/internal/shared"
)

// PageGuard evaluates the guard decision once per full-page navigation
// and applies the redirect policy: anonymous visitors on private pages
// go to the login destination, authenticated visitors on the login page
// or lacking a required permission bounce to the landing destination.
// Denied access is always a redirect, never an error page.
type PageGuard struct {
	Resolver PermissionSource
	Logger   *slog.Logger
}

// Protect wraps a page handler with the guard for the given
// destination.
func (g PageGuard) Protect(dest Destination) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			in := Input{
				UserID:   sess.User(),
				Public:   dest.Public,
				Required: dest.Required,
			}

			// Session resolution always precedes permission
			// resolution; the latter only runs when the
			// destination declares a requirement and the session
			// alone could allow it.
			if !dest.Public && in.UserID != "" && len(dest.Required) > 0 {
				held, err := g.Resolver.EffectivePermissions(r.Context(), in.UserID)
				if err != nil {
					// Fail closed: a failed resolution is
					// never ALLOWED.
					if g.Logger != nil {
						g.Logger.Error("page guard resolve permissions",
							slog.String("path", dest.Path), slog.Any("error", err))
					}
					http.Redirect(w, r, HomePath, http.StatusSeeOther)
					return
				}
				in.Permissions = held
			}

			dec := Evaluate(in)
			if dec.Redirect != "" {
				http.Redirect(w, r, dec.Redirect, http.StatusSeeOther)
				return
			}
			if !dec.RendersContent() {
				// UNKNOWN / PENDING render nothing rather than
				// flashing protected content.
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
