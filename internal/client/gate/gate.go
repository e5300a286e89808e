// Package gate guards protected views against the current session.
//
// Evaluation rules, in order:
//  1. StatusUnknown: show loading, take no action.
//  2. StatusUnauthenticated: navigate to the login view.
//  3. Authenticated with the wrong role: log out, then navigate to login.
//     A role violation invalidates the session rather than hiding content.
//  4. Otherwise render.
package gate

import (
	"context"

	"github.com/dmitrijs2005/eventflow/internal/client/models"
	"github.com/dmitrijs2005/eventflow/internal/client/session"
	"github.com/dmitrijs2005/eventflow/internal/common"
	"github.com/dmitrijs2005/eventflow/internal/logging"
)

// NotAuthorizedMessage is shown before a role violation forces logout.
const NotAuthorizedMessage = "You are not authorized to view this page."

// Decision is the outcome of one evaluation.
type Decision int

const (
	Loading Decision = iota
	RedirectLogin
	ForcedLogout
	Render
)

func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case RedirectLogin:
		return "redirect_login"
	case ForcedLogout:
		return "forced_logout"
	case Render:
		return "render"
	default:
		return "invalid"
	}
}

// leavesView reports whether the decision navigated away from the view.
func (d Decision) leavesView() bool {
	return d == RedirectLogin || d == ForcedLogout
}

// Requirement describes who may see a view.
type Requirement struct {
	role models.Role
}

// Authenticated admits any signed-in user.
var Authenticated = Requirement{}

// RequireRole admits only users holding role.
func RequireRole(role models.Role) Requirement {
	return Requirement{role: role}
}

// Session is the part of session.Manager the gate relies on.
type Session interface {
	Snapshot() session.Session
	Logout(ctx context.Context) error
	Subscribe() (<-chan session.Session, func())
}

// Navigator moves the user to another view.
type Navigator interface {
	Navigate(path string)
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(msg string)
}

// Gate evaluates Requirements against a Session.
type Gate struct {
	sess   Session
	nav    Navigator
	notify Notifier
	log    logging.Logger
}

func New(sess Session, nav Navigator, notify Notifier, log logging.Logger) *Gate {
	if log == nil {
		log = logging.Nop()
	}
	return &Gate{sess: sess, nav: nav, notify: notify, log: log.With("component", "gate")}
}

// Evaluate applies req to the current session and performs any navigation
// or logout the decision calls for.
func (g *Gate) Evaluate(ctx context.Context, req Requirement) Decision {
	return g.apply(ctx, g.sess.Snapshot(), req)
}

// Watch evaluates req now and again on every session change, reporting each
// decision to onDecision. It returns when ctx is done or a decision leaves the
// view, and always releases its subscription before returning.
func (g *Gate) Watch(ctx context.Context, req Requirement, onDecision func(Decision)) Decision {
	updates, release := g.sess.Subscribe()
	defer release()

	d := g.Evaluate(ctx, req)
	if onDecision != nil {
		onDecision(d)
	}

	for !d.leavesView() {
		select {
		case <-ctx.Done():
			return d
		case s, ok := <-updates:
			if !ok {
				return d
			}
			// a change that lands after the view was left is not ours to judge
			if ctx.Err() != nil {
				return d
			}
			d = g.apply(ctx, s, req)
			if onDecision != nil {
				onDecision(d)
			}
		}
	}
	return d
}

func (g *Gate) apply(ctx context.Context, s session.Session, req Requirement) Decision {
	d := decide(s, req)

	switch d {
	case RedirectLogin:
		g.nav.Navigate(common.LoginPath)
	case ForcedLogout:
		if g.notify != nil {
			g.notify.Alert(NotAuthorizedMessage)
		}
		if err := g.sess.Logout(ctx); err != nil {
			g.log.Error(ctx, "forced logout", "err", err)
		}
		g.nav.Navigate(common.LoginPath)
	}

	g.log.Debug(ctx, "gate evaluated", "status", s.Status.String(), "decision", d.String())
	return d
}

// decide is the pure decision table.
func decide(s session.Session, req Requirement) Decision {
	switch s.Status {
	case session.StatusUnknown:
		return Loading
	case session.StatusAuthenticated:
		if s.Identity == nil {
			return RedirectLogin
		}
		if req.role != "" && s.Identity.Role != req.role {
			return ForcedLogout
		}
		return Render
	default:
		return RedirectLogin
	}
}
