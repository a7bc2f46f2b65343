package service

import (
	"context"
	"errors"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/akashhsiv/api-drf/internal/auth/store"
	"github.com/akashhsiv/api-drf/pkg/idx"
)

var (
	ErrRoleNotFound = errors.New("role_not_found")
	ErrRoleTaken    = errors.New("role_taken")
	ErrRoleInUse    = errors.New("role_in_use")
)

// RoleService manages the roles table. All mutations are admin-gated at the
// HTTP layer; the service itself only enforces data rules.
type RoleService struct {
	Store store.Store
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListAll(ctx)
}

func (s *RoleService) Get(ctx context.Context, id string) (domain.Role, error) {
	r, err := s.Store.Roles().GetRoleByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Role{}, ErrRoleNotFound
	}
	return r, err
}

func (s *RoleService) Create(ctx context.Context, name, description string, permissions []string) (domain.Role, error) {
	if permissions == nil {
		permissions = domain.DefaultPermissions(name)
	}
	r := domain.Role{
		ID:          idx.New().String(),
		Name:        name,
		Description: description,
		Permissions: permissions,
	}
	if err := s.Store.Roles().CreateRole(ctx, r); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Role{}, ErrRoleTaken
		}
		return domain.Role{}, err
	}
	return s.Store.Roles().GetRoleByID(ctx, r.ID)
}

// Update changes description and permissions. Role names are immutable;
// access tokens carry the name, so renames would orphan live sessions.
func (s *RoleService) Update(ctx context.Context, id, description string, permissions []string) (domain.Role, error) {
	if err := s.Store.Roles().UpdateRole(ctx, id, description, permissions); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Role{}, ErrRoleNotFound
		}
		return domain.Role{}, err
	}
	return s.Store.Roles().GetRoleByID(ctx, id)
}

func (s *RoleService) Delete(ctx context.Context, id string) error {
	err := s.Store.Roles().DeleteRole(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrRoleNotFound
	default:
		// FK violation from users still holding the role.
		return ErrRoleInUse
	}
}

// CreatableRoleNames returns the role names the actor may provision,
// filtered to roles that actually exist in the table.
func (s *RoleService) CreatableRoleNames(ctx context.Context, actor Actor) ([]string, error) {
	allowed := domain.CreatableRoles(actor.Role, actor.Superuser)
	if len(allowed) == 0 {
		return []string{}, nil
	}

	out := make([]string, 0, len(allowed))
	for _, name := range allowed {
		if _, err := s.Store.Roles().GetRoleByName(ctx, name); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}
