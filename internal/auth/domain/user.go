package domain

import (
	"strings"
	"time"
)

// Kind discriminates the two user populations sharing the users table.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindStaff    Kind = "staff"
)

type User struct {
	ID           string
	Kind         Kind
	Email        string // lowercased, unique across both populations
	Name         string
	PasswordHash string // argon2 encoded

	// Customer profile (empty for staff).
	Phone   string
	Address string

	// Staff attributes (zero for customers).
	RoleID    string // Foreign key to roles table
	CreatedBy string // Staff user that provisioned this account
	Superuser bool

	Active bool

	// Password-reset state. Set and cleared together.
	OTPCode      *string
	OTPExpiresAt *time.Time

	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsStaff reports whether the user belongs to the staff population.
func (u *User) IsStaff() bool { return u.Kind == KindStaff }

// NormalizeEmail canonicalizes an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
