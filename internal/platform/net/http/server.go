// Package http wraps chi behind a small router facade and writes the JSON envelope
package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"khmerfold/internal/platform/config"
	"khmerfold/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the chi mux and the stdlib server in front of it
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer reads ADDR, or PORT (default :4000), from cfg
// opts receive the mux before any route is mounted
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("ADDR", "")
	if addr == "" {
		addr = cfg.MayPort("PORT", ":4000")
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
			ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:       2 * time.Minute,
		},
	}
}

// Router returns the facade over the server mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.addr }

// Handler exposes the mux, handy for httptest
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Run listens until Shutdown; a closed server is not an error
func (s *Server) Run(ctx context.Context) error {
	logger.C(ctx).Info().Str("addr", s.addr).Msg("http listening")
	err := s.srv.ListenAndServe()
	if errors.Is(err, stdhttp.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests until ctx expires
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
