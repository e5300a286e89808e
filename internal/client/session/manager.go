// Package session implements the client's authentication state machine.
//
// A Manager starts in StatusUnknown, leaves it exactly once (Bootstrap or an
// earlier Login), and then moves between StatusAuthenticated and
// StatusUnauthenticated on Login and Logout. The credential is never pushed
// into shared request defaults; callers read it with Credential at the moment
// they dispatch a request.
//
// State changes are published to subscribers (see Subscribe) so guards can
// re-evaluate when the session changes underneath them.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/eventflow/internal/client/models"
	"github.com/dmitrijs2005/eventflow/internal/client/tokenstore"
	"github.com/dmitrijs2005/eventflow/internal/logging"
)

// Manager owns the session state. It is safe for concurrent use.
type Manager struct {
	store   tokenstore.TokenStore
	decoder Decoder
	log     logging.Logger

	mu         sync.Mutex
	status     Status
	identity   *models.Identity
	credential string

	bootOnce sync.Once
	bootErr  error

	subs    map[int]chan Session
	nextSub int
}

// NewManager creates a Manager in StatusUnknown. A nil logger discards output.
func NewManager(store tokenstore.TokenStore, decoder Decoder, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		store:   store,
		decoder: decoder,
		log:     log.With("component", "session"),
		status:  StatusUnknown,
		subs:    make(map[int]chan Session),
	}
}

// Bootstrap restores the session from the token store. Only the first call
// does any work; later calls return the first result.
//
// A missing credential yields StatusUnauthenticated. A credential that fails
// to decode is cleared from the store and also yields StatusUnauthenticated;
// that case is logged, not returned. The only returned errors come from the
// store itself; the session is then StatusUnauthenticated all the same.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.bootOnce.Do(func() {
		m.bootErr = m.bootstrap(ctx)
	})
	return m.bootErr
}

func (m *Manager) bootstrap(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// a Login that raced ahead of bootstrap already resolved the state
	if m.status != StatusUnknown {
		return nil
	}

	credential, ok, err := m.store.Load(ctx)
	if err != nil {
		m.setUnauthenticatedLocked()
		return fmt.Errorf("bootstrap: %w", err)
	}
	if !ok {
		m.log.Debug(ctx, "no stored credential")
		m.setUnauthenticatedLocked()
		return nil
	}

	claims, err := m.decoder.Decode(credential)
	if err != nil {
		m.log.Warn(ctx, "discarding stored credential", "err", err)
		if cerr := m.store.Clear(ctx); cerr != nil {
			m.log.Error(ctx, "clear stored credential", "err", cerr)
		}
		m.setUnauthenticatedLocked()
		return nil
	}

	m.setAuthenticatedLocked(credential, claims)
	m.log.Info(ctx, "session restored", "email", claims.Subject, "role", claims.Role)
	return nil
}

// Login installs a credential fresh from a successful authentication call.
// A credential that does not decode is a caller error: it is returned
// wrapped in ErrDecode and the session is left as it was. So is a failure
// to persist it.
func (m *Manager) Login(ctx context.Context, credential string) error {
	claims, err := m.decoder.Decode(credential)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(ctx, credential); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	m.setAuthenticatedLocked(credential, claims)
	m.log.Info(ctx, "logged in", "email", claims.Subject, "role", claims.Role)
	return nil
}

// Logout forgets the credential and identity. It is a no-op when already
// unauthenticated. In-memory state is always reset, so no later call can pick
// up the old credential even if clearing the store fails; that failure is
// returned.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status == StatusUnauthenticated {
		return nil
	}

	err := m.store.Clear(ctx)
	m.setUnauthenticatedLocked()
	m.log.Info(ctx, "logged out")

	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Snapshot returns the current session.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// IsAuthenticated is shorthand for Snapshot().IsAuthenticated().
func (m *Manager) IsAuthenticated() bool {
	return m.Snapshot().IsAuthenticated()
}

// Credential returns the credential to attach to a request being dispatched
// now. ok is false when unauthenticated.
func (m *Manager) Credential() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusAuthenticated {
		return "", false
	}
	return m.credential, true
}

// Subscribe registers for session changes. The channel holds at most one
// pending snapshot; a slow reader sees the newest one. The returned release
// func unregisters and closes the channel; calling it again is harmless.
func (m *Manager) Subscribe() (<-chan Session, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan Session, 1)
	m.subs[id] = ch

	var once sync.Once
	release := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}
	return ch, release
}

func (m *Manager) setAuthenticatedLocked(credential string, claims models.Claims) {
	id := models.IdentityFromClaims(claims)
	m.credential = credential
	m.identity = &id
	m.status = StatusAuthenticated
	m.publishLocked()
}

func (m *Manager) setUnauthenticatedLocked() {
	m.credential = ""
	m.identity = nil
	m.status = StatusUnauthenticated
	m.publishLocked()
}

func (m *Manager) snapshotLocked() Session {
	s := Session{Status: m.status}
	if m.identity != nil {
		id := *m.identity
		s.Identity = &id
	}
	return s
}

func (m *Manager) publishLocked() {
	s := m.snapshotLocked()
	for _, ch := range m.subs {
		select {
		case ch <- s:
		default:
			// replace the stale pending snapshot
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}
