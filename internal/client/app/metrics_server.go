package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/eventflow/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// metricsServer exposes /metrics until its context ends.
type metricsServer struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

func newMetricsServer(address string, handler http.Handler, logger logging.Logger) *metricsServer {
	return &metricsServer{address: address, handler: handler, logger: logger}
}

func (s *metricsServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on l and stops gracefully once ctx is done.
func (s *metricsServer) Serve(ctx context.Context, l net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.handler)

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping metrics server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting metrics server", "address", l.Addr().String())

	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
