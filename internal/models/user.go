// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the system.
type Role string

const (
	RoleGuest       Role = "guest"
	RoleContributor Role = "contributor"
	RoleSuperAdmin  Role = "super_admin"
)

// Valid reports whether r is one of the known role values.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleContributor, RoleSuperAdmin:
		return true
	}
	return false
}

// User represents a CMS account that can author articles.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsSuperAdmin returns true if the user has the super_admin role.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}
