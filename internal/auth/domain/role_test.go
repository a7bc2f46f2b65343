package domain_test

import (
	"testing"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestCreatableRoles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		role      string
		superuser bool
		want      []string
	}{
		{name: "superuser creates every role", role: "", superuser: true, want: []string{domain.RoleAdmin, domain.RoleManager, domain.RoleCashier}},
		{name: "superuser flag trumps own role", role: domain.RoleManager, superuser: true, want: []string{domain.RoleAdmin, domain.RoleManager, domain.RoleCashier}},
		{name: "admin creates managers", role: domain.RoleAdmin, want: []string{domain.RoleManager}},
		{name: "manager creates cashiers", role: domain.RoleManager, want: []string{domain.RoleCashier}},
		{name: "cashier creates nothing", role: domain.RoleCashier, want: []string{}},
		{name: "unknown role creates nothing", role: "intern", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, domain.CreatableRoles(tt.role, tt.superuser))
		})
	}
}

func TestCanCreateRole(t *testing.T) {
	t.Parallel()

	require.True(t, domain.CanCreateRole(domain.RoleAdmin, false, domain.RoleManager))
	require.True(t, domain.CanCreateRole(domain.RoleManager, false, domain.RoleCashier))

	// Superusers bypass the hierarchy entirely.
	require.True(t, domain.CanCreateRole("", true, domain.RoleAdmin))
	require.True(t, domain.CanCreateRole(domain.RoleAdmin, true, domain.RoleCashier))
	require.True(t, domain.CanCreateRole(domain.RoleCashier, true, domain.RoleAdmin))
	require.True(t, domain.CanCreateRole("", true, "auditor"))

	// No skipping levels, no self-replication.
	require.False(t, domain.CanCreateRole(domain.RoleAdmin, false, domain.RoleAdmin))
	require.False(t, domain.CanCreateRole(domain.RoleAdmin, false, domain.RoleCashier))
	require.False(t, domain.CanCreateRole(domain.RoleManager, false, domain.RoleManager))
	require.False(t, domain.CanCreateRole(domain.RoleCashier, false, domain.RoleCashier))
	require.False(t, domain.CanCreateRole("intern", false, domain.RoleCashier))
}

func TestDefaultPermissions(t *testing.T) {
	t.Parallel()

	require.Contains(t, domain.DefaultPermissions(domain.RoleAdmin), "delete_cashier")
	require.Contains(t, domain.DefaultPermissions(domain.RoleManager), "add_cashier")
	require.NotContains(t, domain.DefaultPermissions(domain.RoleManager), "delete_cashier")
	require.Equal(t, []string{"view_cashier"}, domain.DefaultPermissions(domain.RoleCashier))
	require.Nil(t, domain.DefaultPermissions("intern"))
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	require.Equal(t, "a@example.com", domain.NormalizeEmail("  A@Example.COM "))
}
