package models

// Claims are the identity fields decoded from a credential.
type Claims struct {
	Subject string
	Role    Role
}

// Identity is the signed-in user as seen by views.
type Identity struct {
	Email string
	Role  Role
}

// IdentityFromClaims maps decoded claims onto an Identity; the subject is the
// user's email.
func IdentityFromClaims(c Claims) Identity {
	return Identity{Email: c.Subject, Role: c.Role}
}
