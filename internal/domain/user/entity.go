package user

import (
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the system (matches user_role enum)
type Role string

const (
	RoleClient       Role = "client"
	RoleProfessional Role = "professional"
)

// User represents a user account (matches users table)
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	IsActive     bool      `db:"is_active"`

	// Timestamps
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsClient returns true if user is a client
func (u *User) IsClient() bool {
	return u.Role == RoleClient
}

// IsProfessional returns true if user is a professional
func (u *User) IsProfessional() bool {
	return u.Role == RoleProfessional
}

// CanPublishListings returns true if the role can publish service listings
func (r Role) CanPublishListings() bool {
	return r == RoleProfessional
}

// CanRequestBookings returns true if the role can create booking requests
func (r Role) CanRequestBookings() bool {
	return r == RoleClient
}

// ValidRoles returns list of valid roles for registration
func ValidRoles() []Role {
	return []Role{RoleClient, RoleProfessional}
}

// IsValidRole checks if role is valid for registration
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if string(r) == role {
			return true
		}
	}
	return false
}
