// Package server exposes the placement engine over HTTP.
//
// Two styles of use are supported. One-shot layouts post every size at
// once and get the finished layout (or a rendered artifact) back. Sessions
// keep an engine alive between requests so a client can place rectangles
// one at a time, exactly like calling the engine in-process.
//
// Routes:
//
//	GET    /healthz
//	GET    /version
//	POST   /api/layouts
//	POST   /api/layouts/render?format=png|svg|pdf|json
//	POST   /api/sessions
//	DELETE /api/sessions/{id}
//	POST   /api/sessions/{id}/rectangles
//	GET    /api/sessions/{id}/rectangles
//	DELETE /api/sessions/{id}/rectangles
//	GET    /api/sessions/{id}/metrics
//	GET    /api/sessions/{id}/image.png
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kokodio/tdd/pkg/pipeline"
	"github.com/kokodio/tdd/pkg/session"
)

// Defaults for Config fields left zero.
const (
	DefaultAddr            = "localhost:8080"
	DefaultCleanupInterval = 10 * time.Minute
	DefaultMaxBodyBytes    = 8 << 20
	shutdownTimeout        = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr            string
	Runner          *pipeline.Runner
	Sessions        session.Store
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	MaxBodyBytes    int64
	Logger          *log.Logger
}

// Server is the HTTP API.
type Server struct {
	cfg    Config
	logger *log.Logger
	router chi.Router

	// locks serialises read-modify-write cycles per session ID. Stores
	// that hand out fresh copies (FileStore) would otherwise lose updates.
	// An entry lives only while a request holds or waits for it.
	locksMu sync.Mutex
	locks   map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// New creates a server. Nil Runner, Sessions and Logger get working
// defaults: an uncached runner, an in-memory store and the default logger.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Sessions == nil {
		cfg.Sessions = session.NewMemoryStore()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = session.DefaultTTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{cfg: cfg, logger: cfg.Logger, locks: make(map[string]*sessionLock)}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/api", func(r chi.Router) {
		r.Get("/schema/manifest", s.handleManifestSchema)
		r.Post("/layouts", s.handleCreateLayout)
		r.Post("/layouts/render", s.handleRenderLayout)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Delete("/", s.handleDeleteSession)
			r.Post("/rectangles", s.handlePlaceRectangle)
			r.Get("/rectangles", s.handleListRectangles)
			r.Delete("/rectangles", s.handleResetSession)
			r.Get("/metrics", s.handleSessionMetrics)
			r.Get("/image.png", s.handleSessionImage)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// Expired sessions are swept every CleanupInterval while running.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go s.sweepSessions(ctx)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("serving", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.cfg.Sessions.Cleanup(ctx)
			if err != nil {
				s.logger.Warn("session cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				s.logger.Debug("expired sessions removed", "count", n)
			}
		}
	}
}

// lockSession acquires the per-session mutex and returns its release.
// The last release drops the entry, so unknown and expired IDs leave
// nothing behind.
func (s *Server) lockSession(id string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}
}

// lockCount reports how many session IDs currently have a lock entry.
func (s *Server) lockCount() int {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	return len(s.locks)
}
