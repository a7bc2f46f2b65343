package store

import (
	"context"
	"errors"
	"time"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and to actively stop people from accidentally doing transactions
// within transactions.
type Store interface {
	Users() Users
	Roles() Roles
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., refresh rotation).
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// StaffFilter narrows staff listings. Zero value lists all non-superuser
// staff.
type StaffFilter struct {
	// CreatedBy limits results to accounts provisioned by this user ID.
	CreatedBy string
	// IncludeSuperusers keeps superuser accounts in the listing.
	IncludeSuperusers bool
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail returns a user of the given kind by normalized email.
	GetUserByEmail(ctx context.Context, email string, kind domain.Kind) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates name, phone and address, and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, name, phone, address string) error

	// UpdateStaffRole reassigns a staff account to a different role.
	UpdateStaffRole(ctx context.Context, userID, roleID string) error

	// SetActive flips the active flag and bumps updated_at.
	SetActive(ctx context.Context, userID string, active bool) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetOTP stores a reset code and its expiry as a pair.
	SetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error

	// ClearOTP nulls both OTP columns as a pair.
	ClearOTP(ctx context.Context, userID string) error

	// DeleteExpiredOTPs clears OTP pairs whose expiry has passed (housekeeping).
	DeleteExpiredOTPs(ctx context.Context) error

	// UpdateLastLogin stamps last_login with the current time.
	UpdateLastLogin(ctx context.Context, userID string) error

	// DeleteUser cascades to refresh_tokens (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// ListStaff returns staff accounts matching the filter, newest first.
	ListStaff(ctx context.Context, f StaffFilter) ([]domain.User, error)

	// CountAdmins returns the number of active accounts holding the admin
	// role or the superuser flag. Used by first-admin bootstrap.
	CountAdmins(ctx context.Context) (int, error)
}

type Roles interface {
	// GetRoleByID fetches a role by its ID
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)

	// GetRoleByName fetches a role by its name
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns all roles in the system
	ListAll(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts a new role (id is ULID)
	CreateRole(ctx context.Context, r domain.Role) error

	// UpdateRole modifies the description and permissions for a role
	UpdateRole(ctx context.Context, roleID, description string, permissions []string) error

	// DeleteRole removes a role (fails if users still reference it)
	DeleteRole(ctx context.Context, roleID string) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the token by its fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken flips revoked=1, sets updated_at.
	RevokeRefreshToken(ctx context.Context, hash string) error

	// RevokeAllUserRefreshTokens bulk revocation for a user (e.g., password reset).
	RevokeAllUserRefreshTokens(ctx context.Context, userID string) error

	// DeleteExpiredRefreshTokens is housekeeping.
	DeleteExpiredRefreshTokens(ctx context.Context) error
}
