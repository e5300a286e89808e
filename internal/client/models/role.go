// Package models defines the client-side data shapes exchanged with the
// EventFlow API and derived from the session credential.
package models

// Role is the authorization level carried in the credential claims.
type Role string

const (
	RoleNormal Role = "normal"
	RoleAdmin  Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleNormal, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole converts s into a Role, reporting whether it is known.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}

// Opposite returns the role a promote/demote toggle switches to.
func (r Role) Opposite() Role {
	if r == RoleAdmin {
		return RoleNormal
	}
	return RoleAdmin
}
