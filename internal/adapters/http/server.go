package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/config"
	"github.com/jsamuelsen11/go-sample-gateway/internal/platform/logging"
)

const (
	maxReadHeaderTimeout   = 5 * time.Second
	fallbackShutdownPeriod = 10 * time.Second
)

// Server runs the gateway's inbound listener.
type Server struct {
	srv      *http.Server
	logger   *slog.Logger
	drainFor time.Duration
}

// NewServer builds a server for handler. Header reads are bounded by the
// smaller of cfg.ReadTimeout and 5s. Every request context starts with
// logger, and net/http's own errors are written to it.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	headerTimeout := maxReadHeaderTimeout
	if cfg.ReadTimeout > 0 {
		headerTimeout = min(cfg.ReadTimeout, headerTimeout)
	}
	drainFor := cfg.ShutdownTimeout
	if drainFor <= 0 {
		drainFor = fallbackShutdownPeriod
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: headerTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		BaseContext: func(net.Listener) context.Context {
			return logging.WithLogger(context.Background(), logger)
		},
	}
	return &Server{srv: srv, logger: logger, drainFor: drainFor}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run listens on the configured address and serves until ctx is done. See
// Serve.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done or serving fails. It
// then stops accepting and waits up to the configured shutdown timeout for
// in-flight requests. A shutdown triggered by ctx returns nil unless the
// drain runs out of time.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("serving HTTP", slog.String("addr", ln.Addr().String()))
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving HTTP: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("draining HTTP server",
			slog.Any("cause", context.Cause(gctx)),
			slog.Duration("timeout", s.drainFor),
		)

		drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.drainFor)
		defer cancel()
		if err := s.srv.Shutdown(drainCtx); err != nil {
			return fmt.Errorf("draining HTTP server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
