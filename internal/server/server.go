// Package server runs the HTTP listener and tears down dependencies on exit.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ShutdownFunc releases one dependency.
type ShutdownFunc func(ctx context.Context) error

type hook struct {
	name string
	fn   ShutdownFunc
}

type Server struct {
	http   *http.Server
	grace  time.Duration
	logger *slog.Logger

	mu    sync.Mutex
	hooks []hook
}

func New(handler http.Handler, port int, readTimeout, writeTimeout, shutdownTimeout time.Duration, logger *slog.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readTimeout,
			WriteTimeout:      writeTimeout,
		},
		grace:  shutdownTimeout,
		logger: logger,
	}
}

// OnShutdown adds a dependency to close once the listener has drained. The
// last one added is closed first.
func (s *Server) OnShutdown(name string, fn ShutdownFunc) {
	s.mu.Lock()
	s.hooks = append(s.hooks, hook{name: name, fn: fn})
	s.mu.Unlock()
}

// Run binds the port, serves until ctx ends or the process gets SIGINT or
// SIGTERM, and then drains. A bind failure is returned before serving starts.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	served := make(chan error, 1)
	go func() {
		s.logger.Info("listening", slog.String("addr", ln.Addr().String()))
		served <- s.http.Serve(ln)
	}()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
		return s.drain()
	}
}

func (s *Server) drain() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()

	s.logger.Info("draining connections", slog.Duration("grace", s.grace))
	s.http.SetKeepAlivesEnabled(false)

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http: %w", err))
	}

	s.mu.Lock()
	hooks := append([]hook(nil), s.hooks...)
	s.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		if err := h.fn(ctx); err != nil {
			s.logger.Error("failed to close dependency", slog.String("name", h.name), slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
			continue
		}
		s.logger.Info("dependency closed", slog.String("name", h.name))
	}

	return errors.Join(errs...)
}

func (s *Server) Addr() string {
	return s.http.Addr
}
