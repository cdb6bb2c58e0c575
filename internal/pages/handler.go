// Package pages serves the server-rendered destinations. Authorization
// is applied by the guard wrapped around each route; handlers here only
// render shells, the data inside them is fetched from the JSON API.
package pages

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/fintrack/internal/shared"
	"github.com/fintrack/fintrack/internal/view"
)

// Handler renders page shells.
type Handler struct {
	logger    *slog.Logger
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, templates: templates, csrf: csrf}
}

// Home renders the landing page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/home.html", "Inicio", nil)
}

// Movements renders the movements listing shell.
func (h *Handler) Movements(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/movements.html", "Ingresos y gastos", nil)
}

// MovementNew renders the movement creation form shell.
func (h *Handler) MovementNew(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/movement_new.html", "Nuevo movimiento", nil)
}

// Users renders the user management shell.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/users.html", "Usuarios", nil)
}

// UserEdit renders the user edit shell.
func (h *Handler) UserEdit(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/user_edit.html", "Editar usuario", chi.URLParam(r, "id"))
}

// Reports renders the reports shell.
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/reports.html", "Reportes", nil)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template, title string, data any) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render page", slog.String("template", template), slog.Any("error", err))
	}
}
