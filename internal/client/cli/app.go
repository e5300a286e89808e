package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/eventflow/internal/client/formdata"
	"github.com/dmitrijs2005/eventflow/internal/client/gate"
	"github.com/dmitrijs2005/eventflow/internal/client/models"
	"github.com/dmitrijs2005/eventflow/internal/client/mutator"
	"github.com/dmitrijs2005/eventflow/internal/client/session"
	"github.com/dmitrijs2005/eventflow/internal/common"
	"github.com/dmitrijs2005/eventflow/internal/logging"
)

// API is the part of the REST client the CLI uses.
type API interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, name, email, password string) error
	mutator.EventsAPI
	mutator.UsersAPI
}

// SessionService is the part of session.Manager the CLI uses.
type SessionService interface {
	Login(ctx context.Context, credential string) error
	Logout(ctx context.Context) error
	Snapshot() session.Session
	Credential() (string, bool)
	Subscribe() (<-chan session.Session, func())
}

// AttachmentOpener resolves an image reference typed by the user.
type AttachmentOpener interface {
	Open(ctx context.Context, ref string) (*formdata.Attachment, io.Closer, error)
}

type Options struct {
	API     API
	Session SessionService
	Opener  AttachmentOpener
	Logger  logging.Logger
	In      io.Reader
	Out     io.Writer
}

type App struct {
	api     API
	session SessionService
	gate    *gate.Gate
	events  *mutator.Events
	users   *mutator.Users
	opener  AttachmentOpener
	console *Console
	router  *Router
	reader  *bufio.Reader
	log     logging.Logger

	viewMu     sync.Mutex
	cancelView context.CancelFunc
}

func NewApp(o Options) *App {
	log := o.Logger
	if log == nil {
		log = logging.Nop()
	}

	reader := bufio.NewReader(o.In)
	console := NewConsole(reader, o.Out)
	router := NewRouter(console)

	deps := mutator.Deps{
		Credentials: o.Session,
		Confirmer:   console,
		Notifier:    console,
		Logger:      log,
	}

	return &App{
		api:     o.API,
		session: o.Session,
		gate:    gate.New(o.Session, router, console, log),
		events:  mutator.NewEvents(o.API, deps),
		users:   mutator.NewUsers(o.API, deps),
		opener:  o.Opener,
		console: console,
		router:  router,
		reader:  reader,
		log:     log.With("component", "cli"),
	}
}

// Run opens the start view and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer a.leaveView()

	a.console.Println("Welcome to EventFlow CLI (type 'help' for commands)")
	if a.isLoggedIn() {
		_ = a.Events(ctx)
	} else {
		a.router.Navigate(common.LoginPath)
	}

	runREPL(ctx, a, a.status, a.reader, a.console.Println)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated()
}

func (a *App) isAdmin() bool {
	s := a.session.Snapshot()
	return s.IsAuthenticated() && s.Identity.Role == models.RoleAdmin
}

func (a *App) status() string {
	s := a.session.Snapshot()
	route := a.router.Current()
	if !s.IsAuthenticated() {
		return route
	}
	return fmt.Sprintf("%s %s(%s)", route, s.Identity.Email, s.Identity.Role)
}

// enterView makes path the current view, guarded by req. The returned ctx
// lives until another view is entered; it is nil when the gate did not
// render the view.
func (a *App) enterView(ctx context.Context, path string, req gate.Requirement) (context.Context, bool) {
	viewCtx, cancel := context.WithCancel(ctx)
	a.swapView(cancel)

	first := make(chan gate.Decision, 1)
	go func() {
		reported := false
		a.gate.Watch(viewCtx, req, func(d gate.Decision) {
			if !reported {
				reported = true
				first <- d
			}
		})
	}()

	switch <-first {
	case gate.Render:
		a.router.Navigate(path)
		return viewCtx, true
	case gate.Loading:
		a.console.Println("Loading...")
	}
	return nil, false
}

func (a *App) swapView(cancel context.CancelFunc) {
	a.viewMu.Lock()
	defer a.viewMu.Unlock()
	if a.cancelView != nil {
		a.cancelView()
	}
	a.cancelView = cancel
}

func (a *App) leaveView() {
	a.viewMu.Lock()
	defer a.viewMu.Unlock()
	if a.cancelView != nil {
		a.cancelView()
		a.cancelView = nil
	}
}
