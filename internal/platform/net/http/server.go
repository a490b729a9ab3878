// Package http is the transport layer: a chi backed server, a narrow Router facade
// and the response envelope every endpoint speaks
package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"supercut/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// ShutdownGrace bounds how long Run waits for in flight requests once ctx ends
var ShutdownGrace = 15 * time.Second

// Server owns the chi mux and the stdlib server around it
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer builds a server listening on addr (":4000" when blank)
// opts receive the mux before any routes are mounted
func NewServer(addr string, opts ...func(*chi.Mux)) *Server {
	if addr == "" {
		addr = ":4000"
	}
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr: addr,
		mux:  m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router returns the facade modules mount against
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Handler exposes the root handler, mostly for tests
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.addr }

// Run serves until ctx is cancelled, then drains within ShutdownGrace
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("http shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
		defer cancel()
		return s.Shutdown(sctx)
	}
}

// Shutdown stops accepting connections and waits for active ones
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
