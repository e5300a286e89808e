// Package client talks to the EventFlow REST API.
//
// # Overview
//
// The package provides:
//  1. The Client interface: login and signup, the events collection
//     (list/create/update/delete) and user roles (list/update).
//  2. HTTPClient, a net/http implementation. Each request carries the
//     credential passed by the caller at dispatch time plus an X-Request-ID.
//  3. Metrics, a Prometheus round-tripper that counts and times outbound calls.
//
// # Error Handling
//
// Responses are mapped to sentinel errors matched with errors.Is:
// ErrUnavailable (transport failure, 5xx), ErrUnauthorized (401, 403),
// ErrNotFound (404). Anything else is a *StatusError wrapping ErrServer and
// carrying the server's detail message.
//
// Calls have no client-side timeout; cancel the context to abandon one.
package client
