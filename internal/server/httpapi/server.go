// Package httpapi exposes the billing core over the HTTP JSON surface
// consumed by the browser form and the offline client.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nexsys-labs/billing/internal/logging"
	"github.com/nexsys-labs/billing/internal/server/invoices"
)

type Server struct {
	address  string
	timeout  time.Duration
	logger   logging.Logger
	invoices *invoices.Service
}

func NewServer(addr string, l logging.Logger, is *invoices.Service) *Server {
	return &Server{
		address:  addr,
		timeout:  30 * time.Second,
		logger:   l.With("module", "http_server"),
		invoices: is,
	}
}

// WithRequestTimeout sets the per-request budget applied by the router.
func (s *Server) WithRequestTimeout(d time.Duration) *Server {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Router builds the chi router with all invoice routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(s.requestTimeout)

	r.Get("/healthz", s.handleHealth)
	r.Route("/invoices", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Get("/{number}", s.handleGet)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
