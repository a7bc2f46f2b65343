package service

import (
	"context"
	"errors"
	"strings"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/akashhsiv/api-drf/internal/auth/store"
	"github.com/akashhsiv/api-drf/pkg/cryptox"
	"github.com/akashhsiv/api-drf/pkg/idx"
	"github.com/akashhsiv/api-drf/pkg/slogx"
)

var (
	ErrEmailTaken     = errors.New("email_taken")
	ErrUnknownRole    = errors.New("unknown_role")
	ErrRoleNotAllowed = errors.New("role_not_allowed")
	ErrForbidden      = errors.New("forbidden")
	ErrUserNotFound   = errors.New("user_not_found")
	ErrWeakPassword   = errors.New("weak_password")
)

const minPasswordLength = 8

// Actor identifies the staff member performing a privileged operation,
// extracted from their verified access token.
type Actor struct {
	ID        string
	Role      string
	Superuser bool
}

// IsAdmin reports whether the actor holds admin-level privileges.
func (a Actor) IsAdmin() bool {
	return a.Superuser || a.Role == domain.RoleAdmin
}

type AccountService struct {
	Store store.Store
}

type RegisterCustomerInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// RegisterCustomer creates a self-service customer account.
func (s *AccountService) RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (domain.User, error) {
	if err := validatePassword(in.Password); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Kind:         domain.KindCustomer,
		Email:        domain.NormalizeEmail(in.Email),
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		Active:       true,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("customer registered", "user_id", u.ID)
	return s.Store.Users().GetUserByID(ctx, u.ID)
}

type ProvisionStaffInput struct {
	Name     string
	Email    string
	Password string
	RoleName string // defaults to cashier when empty
}

// ProvisionStaff creates a staff account on behalf of the actor. The actor
// may only mint roles one level below their own, unless they are a
// superuser; the requested role defaults to cashier.
func (s *AccountService) ProvisionStaff(ctx context.Context, actor Actor, in ProvisionStaffInput) (domain.User, error) {
	roleName := strings.TrimSpace(in.RoleName)
	if roleName == "" {
		roleName = domain.RoleCashier
	}

	if !domain.CanCreateRole(actor.Role, actor.Superuser, roleName) {
		return domain.User{}, ErrRoleNotAllowed
	}

	role, err := s.Store.Roles().GetRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnknownRole
		}
		return domain.User{}, err
	}

	if err := validatePassword(in.Password); err != nil {
		return domain.User{}, err
	}
	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Kind:         domain.KindStaff,
		Email:        domain.NormalizeEmail(in.Email),
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		RoleID:       role.ID,
		CreatedBy:    actor.ID,
		Active:       true,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("staff provisioned",
		"user_id", u.ID, "role", roleName, "created_by", actor.ID)
	return s.Store.Users().GetUserByID(ctx, u.ID)
}

// Login checks credentials for the given population and stamps last_login.
// Every failure mode collapses to ErrInvalidCredentials so callers cannot
// probe which emails exist.
func (s *AccountService) Login(ctx context.Context, kind domain.Kind, email, password string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, email, kind)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash verification anyway to keep timing flat.
			_ = cryptox.VerifyPassword(password, cryptox.DummyHash())
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	if !u.Active {
		return domain.User{}, ErrInvalidCredentials
	}

	if err := s.Store.Users().UpdateLastLogin(ctx, u.ID); err != nil {
		// Not worth failing the login over.
		slogx.FromContext(ctx).Warn("last_login stamp failed", "err", err, "user_id", u.ID)
	}

	return s.Store.Users().GetUserByID(ctx, u.ID)
}

// ListStaff returns the staff accounts visible to the actor. Admins and
// superusers see every non-superuser staff account; managers see only the
// accounts they provisioned.
func (s *AccountService) ListStaff(ctx context.Context, actor Actor) ([]domain.User, error) {
	switch {
	case actor.IsAdmin():
		return s.Store.Users().ListStaff(ctx, store.StaffFilter{})
	case actor.Role == domain.RoleManager:
		return s.Store.Users().ListStaff(ctx, store.StaffFilter{CreatedBy: actor.ID})
	default:
		return nil, ErrForbidden
	}
}

// GetStaff returns a single staff account if the actor may see it.
func (s *AccountService) GetStaff(ctx context.Context, actor Actor, userID string) (domain.User, error) {
	u, err := s.visibleStaff(ctx, actor, userID)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

type UpdateStaffInput struct {
	Name     string
	RoleName string // empty means keep the current role
	Active   *bool  // nil means keep the current state
}

// UpdateStaff renames a staff account, optionally reassigns its role, and
// optionally flips the active flag. Role reassignment follows the same
// hierarchy rule as provisioning. Deactivation revokes every live session.
func (s *AccountService) UpdateStaff(ctx context.Context, actor Actor, userID string, in UpdateStaffInput) (domain.User, error) {
	u, err := s.visibleStaff(ctx, actor, userID)
	if err != nil {
		return domain.User{}, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		if err := s.Store.Users().UpdateProfile(ctx, u.ID, name, u.Phone, u.Address); err != nil {
			return domain.User{}, err
		}
	}

	if roleName := strings.TrimSpace(in.RoleName); roleName != "" {
		if !domain.CanCreateRole(actor.Role, actor.Superuser, roleName) {
			return domain.User{}, ErrRoleNotAllowed
		}
		role, err := s.Store.Roles().GetRoleByName(ctx, roleName)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.User{}, ErrUnknownRole
			}
			return domain.User{}, err
		}
		if err := s.Store.Users().UpdateStaffRole(ctx, u.ID, role.ID); err != nil {
			return domain.User{}, err
		}
	}

	if in.Active != nil && *in.Active != u.Active {
		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().SetActive(ctx, u.ID, *in.Active); err != nil {
				return err
			}
			if !*in.Active {
				return tx.RefreshTokens().RevokeAllUserRefreshTokens(ctx, u.ID)
			}
			return nil
		})
		if err != nil {
			return domain.User{}, err
		}
	}

	return s.Store.Users().GetUserByID(ctx, u.ID)
}

// DeleteStaff removes a staff account. Only admins and superusers may
// delete, and superuser accounts are never deletable through this path.
func (s *AccountService) DeleteStaff(ctx context.Context, actor Actor, userID string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !u.IsStaff() || u.Superuser {
		return ErrForbidden
	}

	if err := s.Store.Users().DeleteUser(ctx, userID); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("staff deleted", "user_id", userID, "by", actor.ID)
	return nil
}

// visibleStaff loads a staff account and enforces the actor's visibility
// scope. Out-of-scope accounts read as not found rather than forbidden so
// managers cannot enumerate staff they don't own.
func (s *AccountService) visibleStaff(ctx context.Context, actor Actor, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	if !u.IsStaff() || u.Superuser {
		return domain.User{}, ErrUserNotFound
	}

	switch {
	case actor.IsAdmin():
		return u, nil
	case actor.Role == domain.RoleManager && u.CreatedBy == actor.ID:
		return u, nil
	default:
		return domain.User{}, ErrUserNotFound
	}
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
