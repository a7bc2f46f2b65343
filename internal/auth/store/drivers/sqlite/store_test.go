package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/akashhsiv/api-drf/internal/auth/store"
	"github.com/akashhsiv/api-drf/internal/auth/store/drivers/sqlite"
	"github.com/akashhsiv/api-drf/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newStaff(roleID, createdBy string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Kind:         domain.KindStaff,
		Email:        idx.New().String() + "@example.com",
		Name:         "Test Staff",
		PasswordHash: "x",
		RoleID:       roleID,
		CreatedBy:    createdBy,
		Active:       true,
	}
}

func TestMigrationsSeedRoles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	roles, err := s.Roles().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 3)

	admin, err := s.Roles().GetRoleByName(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	require.Contains(t, admin.Permissions, "delete_manager")

	cashier, err := s.Roles().GetRoleByName(ctx, domain.RoleCashier)
	require.NoError(t, err)
	require.Equal(t, []string{"view_cashier"}, cashier.Permissions)
}

func TestUsersRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := domain.User{
		ID:           idx.New().String(),
		Kind:         domain.KindCustomer,
		Email:        "Customer@Example.com",
		Name:         "Customer One",
		PasswordHash: "hash",
		Phone:        "0400000000",
		Address:      "1 Example St",
		Active:       true,
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	// Emails are normalized on write and lookup.
	got, err := s.Users().GetUserByEmail(ctx, "customer@example.COM", domain.KindCustomer)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "customer@example.com", got.Email)
	require.Equal(t, domain.KindCustomer, got.Kind)
	require.True(t, got.Active)
	require.Nil(t, got.OTPCode)
	require.Nil(t, got.LastLogin)

	// Lookups are kind-scoped even though emails share one namespace.
	_, err = s.Users().GetUserByEmail(ctx, u.Email, domain.KindStaff)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Duplicate email is rejected regardless of kind.
	dup := u
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	asStaff := u
	asStaff.ID = idx.New().String()
	asStaff.Kind = domain.KindStaff
	require.ErrorIs(t, s.Users().CreateUser(ctx, asStaff), store.ErrAlreadyExists)
}

func TestUsersOTPPair(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newStaff("", "")
	u.Kind = domain.KindCustomer
	require.NoError(t, s.Users().CreateUser(ctx, u))

	exp := time.Now().UTC().Add(15 * time.Minute)
	require.NoError(t, s.Users().SetOTP(ctx, u.ID, "123456", exp))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OTPCode)
	require.Equal(t, "123456", *got.OTPCode)
	require.NotNil(t, got.OTPExpiresAt)
	require.WithinDuration(t, exp, *got.OTPExpiresAt, time.Second)

	require.NoError(t, s.Users().ClearOTP(ctx, u.ID))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got.OTPCode)
	require.Nil(t, got.OTPExpiresAt)
}

func TestDeleteExpiredOTPs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fresh := newStaff("", "")
	fresh.Kind = domain.KindCustomer
	stale := newStaff("", "")
	stale.Kind = domain.KindCustomer
	require.NoError(t, s.Users().CreateUser(ctx, fresh))
	require.NoError(t, s.Users().CreateUser(ctx, stale))

	require.NoError(t, s.Users().SetOTP(ctx, fresh.ID, "111111", time.Now().UTC().Add(10*time.Minute)))
	require.NoError(t, s.Users().SetOTP(ctx, stale.ID, "222222", time.Now().UTC().Add(-time.Minute)))

	require.NoError(t, s.Users().DeleteExpiredOTPs(ctx))

	got, err := s.Users().GetUserByID(ctx, fresh.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OTPCode)

	got, err = s.Users().GetUserByID(ctx, stale.ID)
	require.NoError(t, err)
	require.Nil(t, got.OTPCode)
}

func TestListStaffScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	manager, err := s.Roles().GetRoleByName(ctx, domain.RoleManager)
	require.NoError(t, err)
	cashier, err := s.Roles().GetRoleByName(ctx, domain.RoleCashier)
	require.NoError(t, err)

	boss := newStaff(manager.ID, "")
	require.NoError(t, s.Users().CreateUser(ctx, boss))

	mine := newStaff(cashier.ID, boss.ID)
	other := newStaff(cashier.ID, "")
	super := newStaff("", "")
	super.Superuser = true
	require.NoError(t, s.Users().CreateUser(ctx, mine))
	require.NoError(t, s.Users().CreateUser(ctx, other))
	require.NoError(t, s.Users().CreateUser(ctx, super))

	all, err := s.Users().ListStaff(ctx, store.StaffFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3) // superuser excluded by default

	scoped, err := s.Users().ListStaff(ctx, store.StaffFilter{CreatedBy: boss.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, mine.ID, scoped[0].ID)
}

func TestCountAdmins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.Users().CountAdmins(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	admin, err := s.Roles().GetRoleByName(ctx, domain.RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, s.Users().CreateUser(ctx, newStaff(admin.ID, "")))
	super := newStaff("", "")
	super.Superuser = true
	require.NoError(t, s.Users().CreateUser(ctx, super))

	n, err = s.Users().CountAdmins(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestRefreshTokenLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newStaff("", "")
	u.Kind = domain.KindCustomer
	require.NoError(t, s.Users().CreateUser(ctx, u))

	tok := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: "fp-1",
		SessionID: "sid-1",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, tok))

	got, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, "fp-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.UserID)
	require.False(t, got.Revoked)

	require.NoError(t, s.RefreshTokens().RevokeRefreshToken(ctx, "fp-1"))
	got, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, "fp-1")
	require.NoError(t, err)
	require.True(t, got.Revoked)

	// Expired rows are purged by housekeeping.
	expired := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: "fp-2",
		SessionID: "sid-1",
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, expired))
	require.NoError(t, s.RefreshTokens().DeleteExpiredRefreshTokens(ctx))
	_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, "fp-2")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting the user cascades.
	require.NoError(t, s.Users().DeleteUser(ctx, u.ID))
	_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, "fp-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newStaff("", "")
	u.Kind = domain.KindCustomer

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return context.Canceled // force rollback
	})
	require.Error(t, err)

	_, err = s.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
