// Package common contains shared constants and sentinel errors used across
// EventFlow client components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the credential in the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName tags each outbound request for server-side correlation.
const RequestIDHeaderName = "X-Request-ID"

// TokenSlotKey is the name of the durable slot holding the raw credential.
const TokenSlotKey = "authToken"

// LoginPath is the route every gate redirects to.
const LoginPath = "/login"
