package rbac

import "context"

// RepositoryPort defines the persistence operations the resolver needs.
type RepositoryPort interface {
	UserRoleID(ctx context.Context, userID string) (roleID string, found bool, err error)
	RolePermissionKeys(ctx context.Context, roleID string) ([]string, error)
}

// Service resolves the effective permission set of an identity.
type Service struct {
	repo RepositoryPort
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// EffectivePermissions returns the permission keys granted to the
// user's role. An unknown user yields an empty set, not an error:
// absence of identity means absence of permission. Persistence failures
// propagate so callers fail closed instead of defaulting to permitted.
// Each call re-queries current state; a role reassignment takes effect
// on the next resolution.
func (s *Service) EffectivePermissions(ctx context.Context, userID string) ([]string, error) {
	roleID, found, err := s.repo.UserRoleID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return []string{}, nil
	}
	keys, err := s.repo.RolePermissionKeys(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}
