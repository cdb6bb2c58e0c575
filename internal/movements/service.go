package movements

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/fintrack/internal/platform/httpx"
	"github.com/fintrack/fintrack/internal/shared"
)

// RepositoryPort defines data access methods for movements.
type RepositoryPort interface {
	List(ctx context.Context, limit, offset int) ([]ListItem, error)
	Count(ctx context.Context) (int, error)
	Summarize(ctx context.Context) (Summary, error)
	Create(ctx context.Context, m Movement) (ListItem, error)
}

// Service handles movement business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns one page of movements plus the all-time summary.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]ListItem, shared.Pagination, Summary, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, shared.Pagination{}, Summary{}, err
	}
	meta := shared.NewPagination(page, pageSize, total)
	items, err := s.repo.List(ctx, meta.PageSize, meta.Offset())
	if err != nil {
		return nil, shared.Pagination{}, Summary{}, err
	}
	summary, err := s.repo.Summarize(ctx)
	if err != nil {
		return nil, shared.Pagination{}, Summary{}, err
	}
	if items == nil {
		items = []ListItem{}
	}
	return items, meta, summary, nil
}

// CreateInput is the raw POST payload. Amount is `any` because clients
// send it both as a JSON number and as a numeric string.
type CreateInput struct {
	Concept string `json:"concept"`
	Amount  any    `json:"amount"`
	Date    string `json:"date"`
	Type    string `json:"type"`
}

// Create validates the input and records a movement for the given
// creator. All validation happens before any persistence call; each
// failure carries its user-facing message.
func (s *Service) Create(ctx context.Context, in CreateInput, userID string) (ListItem, error) {
	concept := strings.TrimSpace(in.Concept)
	if concept == "" {
		return ListItem{}, httpx.ValidationError("Concepto es requerido")
	}

	amount, ok := parseAmount(in.Amount)
	if !ok {
		return ListItem{}, httpx.ValidationError("Monto es inválido")
	}

	date, ok := parseDate(in.Date)
	if !ok {
		return ListItem{}, httpx.ValidationError("Fecha es inválida")
	}

	movementType := Type(in.Type)
	if !ValidType(movementType) {
		return ListItem{}, httpx.ValidationError("Tipo es inválido")
	}

	m := Movement{
		ID:        uuid.NewString(),
		Concept:   concept,
		Amount:    amount,
		Date:      date,
		Type:      movementType,
		CreatedAt: time.Now().UTC(),
	}
	if userID != "" {
		m.UserID = &userID
	}
	return s.repo.Create(ctx, m)
}

// parseAmount accepts a finite JSON number or a numeric string. NaN,
// infinities and anything unparseable are rejected, never coerced.
func parseAmount(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// parseDate accepts "YYYY-MM-DD" (midnight UTC) or a full RFC 3339
// timestamp.
func parseDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	if len(trimmed) == 10 {
		t, err := time.Parse("2006-01-02", trimmed)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}
	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
