package common

import "errors"

var (
	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Credential errors (malformed, expired or carrying unknown claims).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
