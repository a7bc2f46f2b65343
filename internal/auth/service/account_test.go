package service_test

import (
	"context"
	"testing"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/akashhsiv/api-drf/internal/auth/service"
	"github.com/stretchr/testify/require"
)

func TestRegisterCustomerAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	accounts := &service.AccountService{Store: s}

	u, err := accounts.RegisterCustomer(ctx, service.RegisterCustomerInput{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "password123",
		Phone:    "0400000001",
		Address:  "1 Test St",
	})
	require.NoError(t, err)
	require.Equal(t, domain.KindCustomer, u.Kind)
	require.Equal(t, "alice@example.com", u.Email)
	require.NotEqual(t, "password123", u.PasswordHash)

	// Duplicate registration is rejected.
	_, err = accounts.RegisterCustomer(ctx, service.RegisterCustomerInput{
		Name: "Alice Again", Email: "alice@example.com", Password: "password456",
	})
	require.ErrorIs(t, err, service.ErrEmailTaken)

	// Short passwords are rejected before hashing.
	_, err = accounts.RegisterCustomer(ctx, service.RegisterCustomerInput{
		Name: "Bob", Email: "bob@example.com", Password: "short",
	})
	require.ErrorIs(t, err, service.ErrWeakPassword)

	got, err := accounts.Login(ctx, domain.KindCustomer, "alice@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.NotNil(t, got.LastLogin)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	accounts := &service.AccountService{Store: s}

	_, err := accounts.RegisterCustomer(ctx, service.RegisterCustomerInput{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	})
	require.NoError(t, err)

	// Wrong password, unknown email, and wrong population all collapse to
	// the same error.
	_, err = accounts.Login(ctx, domain.KindCustomer, "alice@example.com", "wrong")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = accounts.Login(ctx, domain.KindCustomer, "nobody@example.com", "password123")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = accounts.Login(ctx, domain.KindStaff, "alice@example.com", "password123")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestProvisionStaffHierarchy(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	accounts := &service.AccountService{Store: s}
	_, root := seedAdmin(t, s)

	// The bootstrap admin is a superuser and bypasses the hierarchy: it may
	// mint a peer admin and skip straight to a cashier.
	ada, err := accounts.ProvisionStaff(ctx, root, service.ProvisionStaffInput{
		Name: "Ada", Email: "ada@example.com", Password: "password123",
		RoleName: domain.RoleAdmin,
	})
	require.NoError(t, err)
	_, err = accounts.ProvisionStaff(ctx, root, service.ProvisionStaffInput{
		Name: "Direct", Email: "direct@example.com", Password: "password123",
		RoleName: domain.RoleCashier,
	})
	require.NoError(t, err)

	admin := actorFor(t, s, ada)
	require.False(t, admin.Superuser)

	// A plain admin creates a manager.
	mgr, err := accounts.ProvisionStaff(ctx, admin, service.ProvisionStaffInput{
		Name: "Manny", Email: "manny@example.com", Password: "password123",
		RoleName: domain.RoleManager,
	})
	require.NoError(t, err)
	require.Equal(t, admin.ID, mgr.CreatedBy)
	mgrActor := actorFor(t, s, mgr)

	// Manager creates a cashier; omitted role defaults to cashier.
	cash, err := accounts.ProvisionStaff(ctx, mgrActor, service.ProvisionStaffInput{
		Name: "Cass", Email: "cass@example.com", Password: "password123",
	})
	require.NoError(t, err)
	cashRole, err := s.Roles().GetRoleByID(ctx, cash.RoleID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleCashier, cashRole.Name)

	// Level skipping and lateral creation are rejected for plain staff.
	_, err = accounts.ProvisionStaff(ctx, admin, service.ProvisionStaffInput{
		Name: "Skip", Email: "skip@example.com", Password: "password123",
		RoleName: domain.RoleCashier,
	})
	require.ErrorIs(t, err, service.ErrRoleNotAllowed)

	_, err = accounts.ProvisionStaff(ctx, mgrActor, service.ProvisionStaffInput{
		Name: "Peer", Email: "peer@example.com", Password: "password123",
		RoleName: domain.RoleManager,
	})
	require.ErrorIs(t, err, service.ErrRoleNotAllowed)

	cashActor := actorFor(t, s, cash)
	_, err = accounts.ProvisionStaff(ctx, cashActor, service.ProvisionStaffInput{
		Name: "Nope", Email: "nope@example.com", Password: "password123",
	})
	require.ErrorIs(t, err, service.ErrRoleNotAllowed)
}

func TestListStaffScopes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	accounts := &service.AccountService{Store: s}
	_, admin := seedAdmin(t, s)

	mgrA, err := accounts.ProvisionStaff(ctx, admin, service.ProvisionStaffInput{
		Name: "Manager A", Email: "mgra@example.com", Password: "password123",
		RoleName: domain.RoleManager,
	})
	require.NoError(t, err)
	mgrB, err := accounts.ProvisionStaff(ctx, admin, service.ProvisionStaffInput{
		Name: "Manager B", Email: "mgrb@example.com", Password: "password123",
		RoleName: domain.RoleManager,
	})
	require.NoError(t, err)

	actorA := actorFor(t, s, mgrA)
	actorB := actorFor(t, s, mgrB)

	cashA, err := accounts.ProvisionStaff(ctx, actorA, service.ProvisionStaffInput{
		Name: "Cash A", Email: "casha@example.com", Password: "password123",
	})
	require.NoError(t, err)
	_, err = accounts.ProvisionStaff(ctx, actorB, service.ProvisionStaffInput{
		Name: "Cash B", Email: "cashb@example.com", Password: "password123",
	})
	require.NoError(t, err)

	// Admin sees everyone except superusers.
	all, err := accounts.ListStaff(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 4)

	// Manager A sees only their own cashier.
	mine, err := accounts.ListStaff(ctx, actorA)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, cashA.ID, mine[0].ID)

	// Cashiers cannot list at all.
	cashActor := actorFor(t, s, cashA)
	_, err = accounts.ListStaff(ctx, cashActor)
	require.ErrorIs(t, err, service.ErrForbidden)

	// Manager B cannot see A's cashier, even by ID.
	_, err = accounts.GetStaff(ctx, actorB, cashA.ID)
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestDeleteStaffIsAdminOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	accounts := &service.AccountService{Store: s}
	adminUser, admin := seedAdmin(t, s)

	mgr, err := accounts.ProvisionStaff(ctx, admin, service.ProvisionStaffInput{
		Name: "Manny", Email: "manny@example.com", Password: "password123",
		RoleName: domain.RoleManager,
	})
	require.NoError(t, err)
	mgrActor := actorFor(t, s, mgr)

	cash, err := accounts.ProvisionStaff(ctx, mgrActor, service.ProvisionStaffInput{
		Name: "Cass", Email: "cass@example.com", Password: "password123",
	})
	require.NoError(t, err)

	// Managers cannot delete, not even their own staff.
	require.ErrorIs(t, accounts.DeleteStaff(ctx, mgrActor, cash.ID), service.ErrForbidden)

	// Admins can.
	require.NoError(t, accounts.DeleteStaff(ctx, admin, cash.ID))
	require.ErrorIs(t, accounts.DeleteStaff(ctx, admin, cash.ID), service.ErrUserNotFound)

	// But not superusers.
	require.ErrorIs(t, accounts.DeleteStaff(ctx, admin, adminUser.ID), service.ErrForbidden)
}

func TestUpdateStaffRoleReassignment(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	accounts := &service.AccountService{Store: s}
	_, admin := seedAdmin(t, s)

	mgr, err := accounts.ProvisionStaff(ctx, admin, service.ProvisionStaffInput{
		Name: "Manny", Email: "manny@example.com", Password: "password123",
		RoleName: domain.RoleManager,
	})
	require.NoError(t, err)

	// Rename only.
	got, err := accounts.UpdateStaff(ctx, admin, mgr.ID, service.UpdateStaffInput{Name: "Manfred"})
	require.NoError(t, err)
	require.Equal(t, "Manfred", got.Name)

	// Reassignment obeys the hierarchy: a plain admin cannot hand out
	// cashier.
	ada, err := accounts.ProvisionStaff(ctx, admin, service.ProvisionStaffInput{
		Name: "Ada", Email: "ada@example.com", Password: "password123",
		RoleName: domain.RoleAdmin,
	})
	require.NoError(t, err)
	_, err = accounts.UpdateStaff(ctx, actorFor(t, s, ada), mgr.ID, service.UpdateStaffInput{RoleName: domain.RoleCashier})
	require.ErrorIs(t, err, service.ErrRoleNotAllowed)

	// The superuser is not bound by it.
	got, err = accounts.UpdateStaff(ctx, admin, mgr.ID, service.UpdateStaffInput{RoleName: domain.RoleCashier})
	require.NoError(t, err)
	role, err := s.Roles().GetRoleByID(ctx, got.RoleID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleCashier, role.Name)
}

func TestDeactivateStaff(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	accounts := &service.AccountService{Store: s}
	tokens := newTokenService(t, s)
	_, admin := seedAdmin(t, s)

	mgr, err := accounts.ProvisionStaff(ctx, admin, service.ProvisionStaffInput{
		Name: "Manny", Email: "manny@example.com", Password: "password123",
		RoleName: domain.RoleManager,
	})
	require.NoError(t, err)

	pair, err := tokens.IssuePair(ctx, mgr)
	require.NoError(t, err)

	// Deactivation locks the account out and kills its sessions.
	off := false
	got, err := accounts.UpdateStaff(ctx, admin, mgr.ID, service.UpdateStaffInput{Active: &off})
	require.NoError(t, err)
	require.False(t, got.Active)

	_, err = accounts.Login(ctx, domain.KindStaff, "manny@example.com", "password123")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = tokens.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, service.ErrInvalidRefresh)

	// Reactivation restores login.
	on := true
	got, err = accounts.UpdateStaff(ctx, admin, mgr.ID, service.UpdateStaffInput{Active: &on})
	require.NoError(t, err)
	require.True(t, got.Active)

	_, err = accounts.Login(ctx, domain.KindStaff, "manny@example.com", "password123")
	require.NoError(t, err)

	// Superusers are invisible to the update path entirely.
	adminRow, err := s.Users().GetUserByEmail(ctx, "root@example.com", domain.KindStaff)
	require.NoError(t, err)
	_, err = accounts.UpdateStaff(ctx, admin, adminRow.ID, service.UpdateStaffInput{Active: &off})
	require.ErrorIs(t, err, service.ErrUserNotFound)
}
