package users

import (
	"context"

	"github.com/fintrack/fintrack/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	List(ctx context.Context, limit, offset int) ([]ListItem, error)
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, id string) (User, error)
	Update(ctx context.Context, id string, name, roleID, phone *string) (User, error)
}

// Service handles user management logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns one page of users.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]ListItem, shared.Pagination, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	meta := shared.NewPagination(page, pageSize, total)
	items, err := s.repo.List(ctx, meta.PageSize, meta.Offset())
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	if items == nil {
		items = []ListItem{}
	}
	return items, meta, nil
}

// Get fetches one user as the detail shape.
func (s *Service) Get(ctx context.Context, id string) (Detail, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return toDetail(u), nil
}

// UpdateInput carries the PATCH payload; nil fields stay unchanged.
type UpdateInput struct {
	Name   *string `json:"name"`
	RoleID *string `json:"roleId"`
	Phone  *string `json:"phone"`
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Detail, error) {
	u, err := s.repo.Update(ctx, id, in.Name, in.RoleID, in.Phone)
	if err != nil {
		return Detail{}, err
	}
	return toDetail(u), nil
}

func toDetail(u User) Detail {
	return Detail{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, RoleID: u.RoleID}
}
