package gate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventflow/internal/client/models"
	"github.com/dmitrijs2005/eventflow/internal/client/session"
	"github.com/dmitrijs2005/eventflow/internal/client/tokenstore"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type recordingNav struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNav) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNav) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

type recordingAlerts struct{ msgs []string }

func (r *recordingAlerts) Alert(msg string) { r.msgs = append(r.msgs, msg) }

// countingSession counts Logout calls on top of a real manager.
type countingSession struct {
	*session.Manager
	mu      sync.Mutex
	logouts int
}

func (c *countingSession) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.logouts++
	c.mu.Unlock()
	return c.Manager.Logout(ctx)
}

func (c *countingSession) Logouts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logouts
}

func token(t *testing.T, sub string, role models.Role) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func newSession(t *testing.T) *countingSession {
	t.Helper()
	return &countingSession{Manager: session.NewManager(tokenstore.NewMemoryStore(), session.NewJWTDecoder(), nil)}
}

func loggedIn(t *testing.T, role models.Role) *countingSession {
	t.Helper()
	s := newSession(t)
	require.NoError(t, s.Login(context.Background(), token(t, "a@x.com", role)))
	return s
}

// ---- Evaluate ----

func TestEvaluate_UnknownShowsLoadingWithoutNavigation(t *testing.T) {
	nav := &recordingNav{}
	g := New(newSession(t), nav, nil, nil)

	require.Equal(t, Loading, g.Evaluate(context.Background(), RequireRole(models.RoleAdmin)))
	require.Empty(t, nav.Paths())
}

func TestEvaluate_UnauthenticatedRedirects(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Bootstrap(context.Background()))
	nav := &recordingNav{}
	g := New(s, nav, nil, nil)

	require.Equal(t, RedirectLogin, g.Evaluate(context.Background(), Authenticated))
	require.Equal(t, []string{"/login"}, nav.Paths())
	require.Zero(t, s.Logouts())
}

func TestEvaluate_RoleMismatchForcesLogoutOnce(t *testing.T) {
	s := loggedIn(t, models.RoleNormal)
	nav := &recordingNav{}
	alerts := &recordingAlerts{}
	g := New(s, nav, alerts, nil)

	require.Equal(t, ForcedLogout, g.Evaluate(context.Background(), RequireRole(models.RoleAdmin)))

	require.Equal(t, 1, s.Logouts())
	require.Equal(t, []string{"/login"}, nav.Paths())
	require.Equal(t, []string{NotAuthorizedMessage}, alerts.msgs)
	require.Equal(t, session.StatusUnauthenticated, s.Snapshot().Status)
}

func TestEvaluate_RenderCases(t *testing.T) {
	tests := []struct {
		name string
		role models.Role
		req  Requirement
	}{
		{"admin on admin view", models.RoleAdmin, RequireRole(models.RoleAdmin)},
		{"normal on open view", models.RoleNormal, Authenticated},
		{"admin on open view", models.RoleAdmin, Authenticated},
		{"normal on normal view", models.RoleNormal, RequireRole(models.RoleNormal)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loggedIn(t, tt.role)
			nav := &recordingNav{}
			g := New(s, nav, nil, nil)

			require.Equal(t, Render, g.Evaluate(context.Background(), tt.req))
			require.Empty(t, nav.Paths())
			require.Zero(t, s.Logouts())
		})
	}
}

func TestDecide_AuthenticatedWithoutIdentityIsNotRendered(t *testing.T) {
	require.Equal(t, RedirectLogin, decide(session.Session{Status: session.StatusAuthenticated}, Authenticated))
}

// ---- Watch ----

func TestWatch_RoleMismatchNeverRenders(t *testing.T) {
	s := loggedIn(t, models.RoleNormal)
	nav := &recordingNav{}
	g := New(s, nav, nil, nil)

	var seen []Decision
	final := g.Watch(context.Background(), RequireRole(models.RoleAdmin), func(d Decision) { seen = append(seen, d) })

	require.Equal(t, ForcedLogout, final)
	require.NotContains(t, seen, Render)
	require.Equal(t, 1, s.Logouts())
	require.Equal(t, []string{"/login"}, nav.Paths())
}

func TestWatch_ReevaluatesOnSessionChanges(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Manager.Login(context.Background(), token(t, "boss@x.com", models.RoleAdmin)))
	nav := &recordingNav{}
	g := New(s, nav, nil, nil)

	decisions := make(chan Decision, 8)
	done := make(chan Decision, 1)
	go func() {
		done <- g.Watch(context.Background(), RequireRole(models.RoleAdmin), func(d Decision) { decisions <- d })
	}()

	require.Equal(t, Render, <-decisions)

	// a logout from another view
	require.NoError(t, s.Manager.Logout(context.Background()))

	select {
	case d := <-done:
		require.Equal(t, RedirectLogin, d)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not react to logout")
	}
	require.Equal(t, []string{"/login"}, nav.Paths())
}

func TestWatch_LoadingThenResolvedByBootstrap(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Save(ctx, token(t, "a@x.com", models.RoleNormal)))
	s := &countingSession{Manager: session.NewManager(store, session.NewJWTDecoder(), nil)}
	g := New(s, &recordingNav{}, nil, nil)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	decisions := make(chan Decision, 8)
	go g.Watch(watchCtx, Authenticated, func(d Decision) { decisions <- d })

	require.Equal(t, Loading, <-decisions)
	require.NoError(t, s.Bootstrap(ctx))
	require.Equal(t, Render, <-decisions)
}

func TestWatch_ReturnsOnCancel(t *testing.T) {
	s := loggedIn(t, models.RoleAdmin)
	g := New(s, &recordingNav{}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Decision, 1)
	go func() { done <- g.Watch(ctx, Authenticated, nil) }()

	cancel()
	select {
	case d := <-done:
		require.Equal(t, Render, d)
	case <-time.After(2 * time.Second):
		t.Fatal("watch ignored cancellation")
	}
}

func TestWatch_IgnoresChangesAfterCancel(t *testing.T) {
	// both the cancellation and the update are pending when Watch wakes up;
	// repeat so either select order is taken
	for i := 0; i < 50; i++ {
		s := loggedIn(t, models.RoleAdmin)
		nav := &recordingNav{}
		alerts := &recordingAlerts{}
		g := New(s, nav, alerts, nil)

		ctx, cancel := context.WithCancel(context.Background())
		started := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			g.Watch(ctx, RequireRole(models.RoleAdmin), func(d Decision) {
				if d == Render {
					close(started)
				}
			})
		}()
		<-started

		cancel()
		require.NoError(t, s.Login(context.Background(), token(t, "b@x.com", models.RoleNormal)))
		<-done

		require.Zero(t, s.Logouts())
		require.Empty(t, nav.Paths())
		require.Empty(t, alerts.msgs)
		require.True(t, s.IsAuthenticated())
	}
}
