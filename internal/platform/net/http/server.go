package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"sync/atomic"
	"time"

	"vesselq/internal/platform/config"
	"vesselq/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server runs the vesselq api on a chi mux
type Server struct {
	addr      string
	bound     atomic.Pointer[string]
	listening chan struct{}
	grace     time.Duration
	mux       *chi.Mux
	srv       *stdhttp.Server
}

// NewServer reads API_PORT and API_*_TIMEOUT from cfg.
// opts receive the *chi.Mux so callers can mount routes/mw
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("API_PORT", ":4000")
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr:      addr,
		listening: make(chan struct{}),
		grace: cfg.MayDuration("API_SHUTDOWN_TIMEOUT", 10*time.Second),
		mux:   m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.MayDuration("API_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      cfg.MayDuration("API_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:       cfg.MayDuration("API_IDLE_TIMEOUT", 2*time.Minute),
		},
	}
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router {
	return AdaptChi(s.mux)
}

// Addr is the bound address once Run is listening ("127.0.0.1:0" resolves to
// the real port), else the configured API_PORT
func (s *Server) Addr() string {
	if b := s.bound.Load(); b != nil {
		return *b
	}
	return s.addr
}

// Listening is closed once Run has bound its socket
func (s *Server) Listening() <-chan struct{} { return s.listening }

// Run starts the server and blocks until it stops.
// Cancelling ctx shuts the server down within the grace period
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	addr := ln.Addr().String()
	s.bound.Store(&addr)
	close(s.listening)
	log.Info().Str("addr", addr).Msg("http listening")

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			sctx, cancel := context.WithTimeout(context.Background(), s.grace)
			defer cancel()
			if err := s.srv.Shutdown(sctx); err != nil {
				log.Warn().Err(err).Msg("http shutdown")
			}
		case <-stop:
		}
	}()

	err = s.srv.Serve(ln)
	if errors.Is(err, stdhttp.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
