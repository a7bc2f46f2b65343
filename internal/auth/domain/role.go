package domain

import (
	"slices"
	"time"
)

type Role struct {
	ID          string
	Name        string
	Description string
	Permissions []string // Parsed from space-delimited storage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Well-known role names. Superuser is an account flag, not a row in the
// roles table, and it bypasses the hierarchy entirely.
const (
	RoleSuperuser = "superuser"
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleCashier   = "cashier"
)

// roleHierarchy maps each role to the roles it may create. One level down
// only, so an admin cannot mint cashiers directly through a manager's back.
var roleHierarchy = map[string][]string{
	RoleAdmin:   {RoleManager},
	RoleManager: {RoleCashier},
	RoleCashier: {},
}

// builtinRoles in hierarchy order, top first.
var builtinRoles = []string{RoleAdmin, RoleManager, RoleCashier}

// rolePermissions is the seed permission set for each built-in role.
var rolePermissions = map[string][]string{
	RoleAdmin: {
		"add_manager", "view_manager", "change_manager", "delete_manager",
		"add_cashier", "view_cashier", "change_cashier", "delete_cashier",
	},
	RoleManager: {
		"add_cashier", "view_cashier", "change_cashier",
	},
	RoleCashier: {
		"view_cashier",
	},
}

// CreatableRoles returns the role names the given actor may provision.
// Superusers bypass the hierarchy and may hand out every role; everyone
// else gets one level below their own. Unknown roles get nothing; the
// hierarchy fails closed.
func CreatableRoles(role string, superuser bool) []string {
	if superuser {
		return slices.Clone(builtinRoles)
	}
	return slices.Clone(roleHierarchy[role])
}

// CanCreateRole reports whether the actor may provision a staff account with
// the target role. Superusers are unrestricted, including for custom roles
// outside the built-in hierarchy.
func CanCreateRole(actorRole string, actorSuperuser bool, target string) bool {
	if actorSuperuser {
		return true
	}
	return slices.Contains(roleHierarchy[actorRole], target)
}

// DefaultPermissions returns the seed permissions for a built-in role name,
// or nil for unknown roles.
func DefaultPermissions(role string) []string {
	return slices.Clone(rolePermissions[role])
}
