package server

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/config"
	"github.com/MKhiriev/kiosk-gate/internal/handler"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may take to drain.
const shutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	onShutdown []func()
	stopOnce   sync.Once
	logger     *logger.Logger
}

// Option customises a server built by NewServer.
type Option func(*server)

// OnShutdown registers fn to run after the HTTP server has drained, e.g. to
// stop background workers. Hooks run in registration order.
func OnShutdown(fn func()) Option {
	return func(s *server) { s.onShutdown = append(s.onShutdown, fn) }
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger, opts ...Option) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoHTTPHandler
	}
	if cfg.HTTPAddress == "" {
		return nil, errNoHTTPAddress
	}

	s := &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

// Shutdown drains the HTTP server and runs the shutdown hooks. Only the
// first call has an effect.
func (s *server) Shutdown() {
	s.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.httpServer.Shutdown(ctx)
		for _, fn := range s.onShutdown {
			fn()
		}
	})
}

// run serves until ctx is cancelled or the listener fails, then shuts down.
func (s *server) run(ctx context.Context) error {
	errCh := make(chan error, 1)

	s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("Launching HTTP server")
	go func() {
		errCh <- s.httpServer.RunServer()
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			runErr = fmt.Errorf("HTTP server stopped: %w", err)
		}
	}

	s.Shutdown()
	if runErr != nil {
		return runErr
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
