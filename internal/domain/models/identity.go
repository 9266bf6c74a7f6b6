// internal/domain/models/identity.go
package models

// Terminology: Identifiers
//   - LoginID / loginID / login_id: The case-sensitive string a student types to log in
//   - DisplayName / display_name: The registered name, always stored uppercase

import "time"

// AdminLoginID is the bootstrap administrator identity. It is seeded at
// startup and can never be registered by anyone else.
const AdminLoginID = "ADMIN"

// Roles derived from the identity.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Identity is a registered login principal (a student or the administrator).
// Identities are created on registration and never updated or deleted.
type Identity struct {
	LoginID      string    `bson:"login_id" json:"login_id"`
	PasswordHash string    `bson:"password_hash" json:"-"` // bcrypt hash (never in JSON)
	DisplayName  string    `bson:"display_name" json:"display_name"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// IsAdmin reports whether this is the bootstrap administrator.
func (i Identity) IsAdmin() bool {
	return i.LoginID == AdminLoginID
}

// Role returns the role used by the session layer.
func (i Identity) Role() string {
	if i.IsAdmin() {
		return RoleAdmin
	}
	return RoleStudent
}
