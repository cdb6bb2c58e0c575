package movements

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/fintrack/internal/platform/httpx"
	"github.com/fintrack/fintrack/internal/rbac"
	"github.com/fintrack/fintrack/internal/shared"
)

// Handler serves the movements API.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac}
}

// MountRoutes registers movement routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.MethodNotAllowed(httpx.MethodNotAllowed)
	r.With(h.rbac.RequireAll(rbac.PermMovementsRead)).Get("/", h.list)
	r.With(h.rbac.RequireAll(rbac.PermMovementsCreate)).Post("/", h.create)
}

type movementItem struct {
	ID       string  `json:"id"`
	Concept  string  `json:"concept"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
	Type     Type    `json:"type"`
	UserName *string `json:"userName"`
}

type listResponse struct {
	Data    []movementItem    `json:"data"`
	Meta    shared.Pagination `json:"meta"`
	Summary Summary           `json:"summary"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := shared.ParseListParams(r.URL.Query())
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	items, meta, summary, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("list movements", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	data := make([]movementItem, 0, len(items))
	for _, item := range items {
		data = append(data, toMovementItem(item))
	}
	httpx.JSON(w, http.StatusOK, listResponse{Data: data, Meta: meta, Summary: summary})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	sess := shared.SessionFromContext(r.Context())
	item, err := h.service.Create(r.Context(), in, sess.User())
	if err != nil {
		h.logger.Warn("create movement", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toMovementItem(item))
}

func toMovementItem(item ListItem) movementItem {
	return movementItem{
		ID:       item.ID,
		Concept:  item.Concept,
		Amount:   item.Amount,
		Date:     item.Date.UTC().Format(time.RFC3339),
		Type:     item.Type,
		UserName: item.UserName,
	}
}
