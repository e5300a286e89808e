package models

// UserRecord is a server-owned account as returned by GET /api/users/.
// Role is the only field the client may change.
type UserRecord struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
