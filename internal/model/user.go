package model

import "time"

// Role values stored in users.role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application user record as stored in the
// `users` table.  Users are created at registration or by the
// first-run admin seed and are never updated or deleted.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Name         – display name.
//	Email        – unique, lower-cased email address.
//	PasswordHash – bcrypt hashed password.
//	Role         – "user" or "admin".
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
