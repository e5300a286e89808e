package session

import "github.com/dmitrijs2005/eventflow/internal/client/models"

// Status is the authentication phase of the session.
type Status int

const (
	// StatusUnknown holds until Bootstrap completes; views treat it as loading.
	StatusUnknown Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "invalid"
	}
}

// Session is an immutable snapshot of the state machine.
// Identity is non-nil exactly when Status is StatusAuthenticated.
type Session struct {
	Status   Status
	Identity *models.Identity
}

// IsAuthenticated is derived from Status on every call.
func (s Session) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated
}

// IsLoading reports the pre-bootstrap phase.
func (s Session) IsLoading() bool {
	return s.Status == StatusUnknown
}
