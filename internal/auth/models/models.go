// Package models holds the account types shared by the auth state
// machine, the route guard, and the upstream API clients.
package models

// Role is the coarse access level carried on an account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User mirrors the upstream account record. Depending on the upstream
// version, verification arrives either as a timestamp or as a boolean,
// so both encodings are accepted.
type User struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Role            Role    `json:"role"`
	EmailVerifiedAt *string `json:"email_verified_at,omitempty"`
	EmailVerified   bool    `json:"email_verified,omitempty"`
}

// VerifiedEmail reports whether the record itself carries proof of
// verification, under either encoding.
func (u *User) VerifiedEmail() bool {
	if u == nil {
		return false
	}
	if u.EmailVerifiedAt != nil && *u.EmailVerifiedAt != "" {
		return true
	}
	return u.EmailVerified
}

// IsAdmin reports whether the account has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsUser reports whether the account has the regular user role.
func (u *User) IsUser() bool {
	return u != nil && u.Role == RoleUser
}
