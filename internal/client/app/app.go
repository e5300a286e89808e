// Package app assembles the EventFlow client: configuration, logging, the
// credential store, the session, the REST client with its metrics, the
// attachment opener and the interactive CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/eventflow/internal/client/attachments"
	"github.com/dmitrijs2005/eventflow/internal/client/cli"
	"github.com/dmitrijs2005/eventflow/internal/client/client"
	"github.com/dmitrijs2005/eventflow/internal/client/config"
	"github.com/dmitrijs2005/eventflow/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/eventflow/internal/client/session"
	"github.com/dmitrijs2005/eventflow/internal/client/storage"
	"github.com/dmitrijs2005/eventflow/internal/client/tokenstore"
	"github.com/dmitrijs2005/eventflow/internal/filex"
	"github.com/dmitrijs2005/eventflow/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	session *session.Manager
	api     *client.HTTPClient
	metrics *client.Metrics
	cli     *cli.App
}

// NewApp builds every component and restores the session from the token
// store. in and out are the terminal; logs go to logOut.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger, err := logging.New(logOut, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app := &App{config: c, logger: logger, metrics: client.NewMetrics()}

	store, err := app.openTokenStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("token store init error: %w", err)
	}

	app.api, err = client.NewHTTPClient(c.ServerURL,
		client.WithLogger(logger),
		client.WithMetrics(app.metrics),
	)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("api client init error: %w", err)
	}

	app.session = session.NewManager(store, session.NewJWTDecoder(), logger)
	if err := app.session.Bootstrap(ctx); err != nil {
		// the session is already unauthenticated; the user can still log in
		logger.Error(ctx, "restore session", "err", err)
	}

	opener := attachments.NewOpener(attachments.S3Config{
		Region:    c.S3Region,
		Endpoint:  c.S3Endpoint,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	})

	app.cli = cli.NewApp(cli.Options{
		API:     app.api,
		Session: app.session,
		Opener:  opener,
		Logger:  logger,
		In:      in,
		Out:     out,
	})

	return app, nil
}

func (app *App) openTokenStore(ctx context.Context) (tokenstore.TokenStore, error) {
	if app.config.Ephemeral {
		return tokenstore.NewMemoryStore(), nil
	}
	if _, err := filex.EnsureParentDir(app.config.DBPath); err != nil {
		return nil, err
	}
	db, err := storage.Open(ctx, sqliteDSN(app.config.DBPath, app.config.DBBusyTimeout))
	if err != nil {
		return nil, err
	}
	app.db = db
	return tokenstore.NewSQLStore(metadata.NewSQLiteRepository(db)), nil
}

func sqliteDSN(path string, busyTimeout time.Duration) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", path, busyTimeout.Milliseconds())
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startMetricsServer(ctx context.Context) {
	s := newMetricsServer(app.config.MetricsAddr, app.metrics.Handler(), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "metrics server", "err", err)
	}
}

// Run serves the CLI until the user exits, stdin closes or a signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "server", app.config.ServerURL)

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx)
		}()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.cli.Run(ctx)
	}()

	// a blocked terminal read does not hold up shutdown
	select {
	case <-done:
	case <-ctx.Done():
	}
	cancelFunc()

	wg.Wait()
	app.logger.Info(ctx, "Stopped")
}

// Close releases the API connections and the local database.
func (app *App) Close() {
	if app.api != nil {
		_ = app.api.Close()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "close db", "err", err)
		}
	}
	if z, ok := app.logger.(*logging.ZapLogger); ok {
		_ = z.Sync()
	}
}
