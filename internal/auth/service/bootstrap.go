package service

import (
	"context"
	"errors"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/akashhsiv/api-drf/internal/auth/store"
	"github.com/akashhsiv/api-drf/pkg/cryptox"
	"github.com/akashhsiv/api-drf/pkg/idx"
	"github.com/akashhsiv/api-drf/pkg/slogx"
)

var ErrBootstrapAlready = errors.New("an admin account already exists")

// BootstrapService creates the first admin account. It is deliberately not
// reachable over HTTP; the bootstrap CLI is the only caller.
type BootstrapService struct {
	Store store.Store
}

// CreateFirstAdmin provisions a superuser admin account, but only while the
// system has no admin at all. The check and the insert share a transaction
// so two concurrent invocations cannot both succeed.
func (s *BootstrapService) CreateFirstAdmin(ctx context.Context, name, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if err := validatePassword(password); err != nil {
		return domain.User{}, err
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	userID := idx.New().String()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Users().CountAdmins(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrBootstrapAlready
		}

		role, err := tx.Roles().GetRoleByName(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}

		return tx.Users().CreateUser(ctx, domain.User{
			ID:           userID,
			Kind:         domain.KindStaff,
			Email:        domain.NormalizeEmail(email),
			Name:         name,
			PasswordHash: hash,
			RoleID:       role.ID,
			Superuser:    true,
			Active:       true,
		})
	})
	if err != nil {
		return domain.User{}, err
	}

	l.Info("first admin created", "user_id", userID)
	return s.Store.Users().GetUserByID(ctx, userID)
}
