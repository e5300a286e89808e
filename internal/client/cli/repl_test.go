package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/eventflow/internal/client/models"
	"github.com/dmitrijs2005/eventflow/internal/client/mutator"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	admin    bool
	err      error

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) Register(ctx context.Context) error { return f.record("signup") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(ctx context.Context) error   { return f.record("whoami") }
func (f *fakeExec) Events(ctx context.Context) error   { return f.record("events") }
func (f *fakeExec) Admin(ctx context.Context) error    { return f.record("admin") }
func (f *fakeExec) AddEvent(ctx context.Context) error { return f.record("addevent") }
func (f *fakeExec) EditEvent(ctx context.Context, id string) error {
	return f.record("editevent " + id)
}
func (f *fakeExec) DeleteEvent(ctx context.Context, id string) error {
	return f.record("delevent " + id)
}
func (f *fakeExec) ToggleRole(ctx context.Context, id string) error {
	return f.record("togglerole " + id)
}
func (f *fakeExec) SetRole(ctx context.Context, id string, role models.Role) error {
	return f.record(fmt.Sprintf("setrole %s %s", id, role))
}

// lineRecorder collects what runREPL prints.
type lineRecorder struct{ lines []string }

func (r *lineRecorder) Println(a ...any) {
	r.lines = append(r.lines, strings.TrimSpace(fmt.Sprintln(a...)))
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"login",
		"events",
		"admin",
		"addevent",
		"editevent 7",
		"delevent 7",
		"promote 3",
		"demote 3",
		"togglerole 4",
		"whoami",
		"logout",
		"signup",
		"exit",
		"events",
	}, "\n")

	exec := &fakeExec{}
	out := &lineRecorder{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input), out.Println)

	require.Equal(t, []string{
		"login", "events", "admin", "addevent", "editevent 7", "delevent 7",
		"setrole 3 admin", "setrole 3 normal", "togglerole 4", "whoami", "logout", "signup",
	}, exec.calls)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	out := &lineRecorder{}

	exec := &fakeExec{loggedIn: true, admin: true}
	runREPL(context.Background(), exec, func() string { return "s" },
		rdr("editevent\ndelevent 1 2\npromote\ntogglerole\nfoobar\nquit\n"), out.Println)

	require.Empty(t, exec.calls)
	require.Contains(t, out.lines, "Usage: editevent <id>")
	require.Contains(t, out.lines, "Usage: delevent <id>")
	require.Contains(t, out.lines, "Usage: promote <userID>")
	require.Contains(t, out.lines, "Usage: togglerole <userID>")
	require.Contains(t, out.lines, "Unknown command: foobar")
	require.Contains(t, out.lines, "Bye!")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	tests := []struct {
		name  string
		exec  *fakeExec
		wants string
		not   string
	}{
		{"logged out", &fakeExec{}, "signup, login", "logout"},
		{"normal", &fakeExec{loggedIn: true}, "events, whoami, logout", "admin"},
		{"admin", &fakeExec{loggedIn: true, admin: true}, "promote <userID>", "signup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &lineRecorder{}
			runREPL(context.Background(), tt.exec, func() string { return "" }, rdr("help\n"), out.Println)

			joined := strings.Join(out.lines, "\n")
			require.Contains(t, joined, tt.wants)
			require.NotContains(t, joined, tt.not)
		})
	}
}

func TestRunREPL_ReportsErrors(t *testing.T) {
	out := &lineRecorder{}

	exec := &fakeExec{err: mutator.ErrDeclined}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("delevent 7\n"), out.Println)
	require.Contains(t, out.lines, "Cancelled.")

	exec = &fakeExec{err: errors.New("server unavailable")}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("events\n"), out.Println)
	require.Contains(t, out.lines, "Error: server unavailable")
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("login\n"), (&lineRecorder{}).Println)
	require.Empty(t, exec.calls)
}
