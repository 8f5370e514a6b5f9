package domain

import "time"

// Role gates access to the admin surface. Immutable once assigned.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// User is an account record. Users are created at signup or seeded from the
// user table; they are never mutated or deleted afterwards.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`

	// PasswordHash is the bcrypt hash of the credential.
	// Never serialized to clients.
	PasswordHash []byte `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
