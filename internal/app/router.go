package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/fintrack/fintrack/internal/auth"
	"github.com/fintrack/fintrack/internal/movements"
	"github.com/fintrack/fintrack/internal/pages"
	"github.com/fintrack/fintrack/internal/platform/httpx"
	"github.com/fintrack/fintrack/internal/rbac"
	"github.com/fintrack/fintrack/internal/reports"
	"github.com/fintrack/fintrack/internal/roles"
	"github.com/fintrack/fintrack/internal/shared"
	"github.com/fintrack/fintrack/internal/users"
	"github.com/fintrack/fintrack/internal/view"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Templates      *view.Engine
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager

	AuthHandler        *auth.Handler
	PagesHandler       *pages.Handler
	MovementsHandler   *movements.Handler
	UsersHandler       *users.Handler
	RolesHandler       *roles.Handler
	ReportsHandler     *reports.Handler
	PermissionsHandler *rbac.PermissionsHandler

	PageGuard rbac.PageGuard
}

// NewRouter constructs the chi.Router.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Page destinations, each wrapped by the navigation guard with its
	// registry entry. The login page is the single public destination.
	guarded := func(path string, h http.HandlerFunc) {
		dest, ok := rbac.DestinationFor(path)
		if !ok {
			panic(fmt.Sprintf("app: page %s missing from destination registry", path))
		}
		r.With(params.PageGuard.Protect(dest)).Get(path, h)
	}
	guarded(rbac.LoginPath, params.AuthHandler.ShowLogin)
	guarded(rbac.HomePath, params.PagesHandler.Home)
	guarded("/movements", params.PagesHandler.Movements)
	guarded("/movements/new", params.PagesHandler.MovementNew)
	guarded("/users", params.PagesHandler.Users)
	guarded("/users/{id}", params.PagesHandler.UserEdit)
	guarded("/reports", params.PagesHandler.Reports)

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/api", func(r chi.Router) {
		r.MethodNotAllowed(httpx.MethodNotAllowed)
		r.Route("/auth", params.AuthHandler.MountAPIRoutes)
		r.Route("/me/permissions", params.PermissionsHandler.MountRoutes)
		r.Route("/movements", params.MovementsHandler.MountRoutes)
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/roles", params.RolesHandler.MountRoutes)
		r.Route("/reports", params.ReportsHandler.MountRoutes)
	})

	return r
}
