// Package server provides the HTTP status server run alongside watch mode.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"mercator-hq/pairnum/pkg/telemetry/health"
)

// Default timeouts for the status server.
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// ErrAlreadyStarted is returned when Start is called more than once.
var ErrAlreadyStarted = errors.New("server already started")

// Config configures the status server.
type Config struct {
	// ListenAddress is the host:port to bind. Port 0 picks a free port.
	ListenAddress string

	// MetricsPath is where the metrics handler is mounted.
	MetricsPath string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Option configures optional routes.
type Option func(*Server)

// WithMetrics mounts h at Config.MetricsPath.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithHealth mounts the /health, /ready and /version probes.
func WithHealth(checker *health.Checker, version, commit, buildTime string) Option {
	return func(s *Server) {
		s.checker = checker
		s.version = [3]string{version, commit, buildTime}
	}
}

// Server serves metrics and health probes over HTTP.
type Server struct {
	cfg     Config
	logger  *slog.Logger
	metrics http.Handler
	checker *health.Checker
	version [3]string

	mu         sync.Mutex
	started    bool
	addr       net.Addr
	httpServer *http.Server
	ready      chan struct{}
}

// New creates a status server. A nil logger uses slog.Default().
func New(cfg Config, logger *slog.Logger, opts ...Option) *Server {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger.With("component", "server"),
		ready:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler with logging and panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.metrics != nil {
		mux.Handle(s.cfg.MetricsPath, s.metrics)
	}
	if s.checker != nil {
		health.Register(mux, s.checker, s.version[0], s.version[1], s.version[2])
	}

	var h http.Handler = mux
	h = loggingMiddleware(s.logger, h)
	h = recoveryMiddleware(s.logger, h)
	return h
}

// Start binds the listener and serves until ctx is cancelled, then shuts
// down gracefully. It returns nil after a clean shutdown. A server can be
// started once.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}

	ln, err := net.Listen("tcp", s.cfg.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddress, err)
	}

	s.started = true
	s.addr = ln.Addr()
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	srv := s.httpServer
	close(s.ready)
	s.mu.Unlock()

	s.logger.Info("starting status server", "address", ln.Addr().String())

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		return s.shutdown(srv, errChan)
	case err := <-errChan:
		return err
	}
}

func (s *Server) shutdown(srv *http.Server, errChan <-chan error) error {
	s.logger.Info("initiating graceful shutdown", "timeout", s.cfg.ShutdownTimeout.String())

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	err := srv.Shutdown(ctx)
	if serveErr := <-errChan; serveErr != nil && err == nil {
		err = serveErr
	}

	if err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.logger.Info("status server stopped")
	return nil
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}
