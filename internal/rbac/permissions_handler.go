package rbac

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/fintrack/internal/platform/httpx"
	"github.com/fintrack/fintrack/internal/shared"
)

// PermissionsHandler serves the permission set of the current identity.
// The client-side guard fetches this to gate rendering and navigation.
type PermissionsHandler struct {
	logger   *slog.Logger
	resolver PermissionSource
}

// NewPermissionsHandler builds a PermissionsHandler.
func NewPermissionsHandler(logger *slog.Logger, resolver PermissionSource) *PermissionsHandler {
	return &PermissionsHandler{logger: logger, resolver: resolver}
}

// MountRoutes registers the handler under the given router.
func (h *PermissionsHandler) MountRoutes(r chi.Router) {
	r.MethodNotAllowed(httpx.MethodNotAllowed)
	r.Get("/", h.currentPermissions)
}

type permissionsResponse struct {
	Permissions []string `json:"permissions"`
}

func (h *PermissionsHandler) currentPermissions(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if !sess.Authenticated() {
		httpx.RespondError(w, httpx.ErrUnauthenticated)
		return
	}
	held, err := h.resolver.EffectivePermissions(r.Context(), sess.User())
	if err != nil {
		h.logger.Error("current permissions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, permissionsResponse{Permissions: held})
}
