// Package cli provides the interactive EventFlow command-line client.
//
// It wires the REST client, the session, the authorization gate and the
// event and user collections into a REPL. Typical flow: log in, browse
// events, and, as an admin, manage events and user roles.
//
// Key features:
//   - Signup / Login / Logout
//   - Events view for any signed-in user
//   - Admin dashboard: add, edit and delete events, promote and demote users
//   - Image attachments from local files or s3://bucket/key references
//
// Each view is guarded by the gate. Entering a view cancels the previous
// one, and results arriving for a view that was left are dropped.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Console, Router and runREPL for details.
package cli
