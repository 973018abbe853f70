package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kokodio/tdd/pkg/buildinfo"
	"github.com/kokodio/tdd/pkg/cloud"
	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/geom"
	"github.com/kokodio/tdd/pkg/layout"
	"github.com/kokodio/tdd/pkg/metrics"
	"github.com/kokodio/tdd/pkg/pipeline"
	"github.com/kokodio/tdd/pkg/render"
	"github.com/kokodio/tdd/pkg/session"
)

var contentTypes = map[string]string{
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json; charset=utf-8",
}

// =============================================================================
// Meta
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Current())
}

func (s *Server) handleManifestSchema(w http.ResponseWriter, r *http.Request) {
	writeBytes(w, "application/schema+json", cloud.ManifestSchema())
}

// =============================================================================
// One-shot layouts
// =============================================================================

// layoutRequest is pipeline.Options restricted to what a client may set.
type layoutRequest struct {
	Sizes    []geom.Size `json:"sizes,omitempty"`
	Count    int         `json:"count,omitempty"`
	MinSize  int         `json:"min_size,omitempty"`
	MaxSize  int         `json:"max_size,omitempty"`
	Seed     uint64      `json:"seed,omitempty"`
	Strategy string      `json:"strategy,omitempty"`
	Center   *geom.Point `json:"center,omitempty"`
	Renderer string      `json:"renderer,omitempty"`
	Labels   bool        `json:"labels,omitempty"`
}

func (req layoutRequest) options() pipeline.Options {
	opts := pipeline.Options{
		Sizes:    req.Sizes,
		Count:    req.Count,
		MinSize:  req.MinSize,
		MaxSize:  req.MaxSize,
		Seed:     req.Seed,
		Strategy: req.Strategy,
		Renderer: req.Renderer,
		Labels:   req.Labels,
	}
	if req.Center != nil {
		opts.CenterX, opts.CenterY = req.Center.X, req.Center.Y
	}
	return opts
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := s.decodeJSON(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	l, _, err := s.cfg.Runner.ComputeLayout(r.Context(), req.options())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleRenderLayout(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatPNG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	var req layoutRequest
	if err := s.decodeJSON(w, r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := req.options()
	opts.Formats = []string{format}

	l, _, err := s.cfg.Runner.ComputeLayout(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	artifacts, _, err := s.cfg.Runner.Render(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeBytes(w, contentTypes[format], artifacts[format])
}

// =============================================================================
// Sessions
// =============================================================================

type createSessionRequest struct {
	Strategy string      `json:"strategy,omitempty"`
	Center   *geom.Point `json:"center,omitempty"`
}

type sessionResponse struct {
	ID         string          `json:"id"`
	Strategy   layout.Strategy `json:"strategy"`
	Center     geom.Point      `json:"center"`
	Rectangles int             `json:"rectangles"`
	ExpiresAt  time.Time       `json:"expires_at"`
}

func newSessionResponse(sess *session.Session) sessionResponse {
	return sessionResponse{
		ID:         sess.ID,
		Strategy:   sess.Strategy,
		Center:     sess.Center,
		Rectangles: sess.Len(),
		ExpiresAt:  sess.ExpiresAt().UTC(),
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := s.decodeJSON(w, r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}
	strategy, err := layout.ParseStrategy(req.Strategy)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var center geom.Point
	if req.Center != nil {
		center = *req.Center
	}

	sess, err := session.New(strategy, center, s.cfg.SessionTTL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.cfg.Sessions.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Debug("session created", "id", sess.ID, "strategy", strategy)
	writeJSON(w, http.StatusCreated, newSessionResponse(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	unlock := s.lockSession(id)
	defer unlock()

	if _, err := s.cfg.Sessions.Get(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.cfg.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlaceRectangle(w http.ResponseWriter, r *http.Request) {
	var size geom.Size
	if err := s.decodeJSON(w, r, &size, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := errors.ValidateSize(size.Width, size.Height); err != nil {
		s.writeError(w, r, err)
		return
	}

	var placed geom.Rectangle
	err := s.mutateSession(r, func(sess *session.Session) error {
		var err error
		placed, err = sess.Place(size)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, placed)
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	err := s.mutateSession(r, func(sess *session.Session) error {
		sess.Reset()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListRectangles(w http.ResponseWriter, r *http.Request) {
	sess, err := s.cfg.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rects := sess.Rectangles()
	if rects == nil {
		rects = []geom.Rectangle{}
	}
	writeJSON(w, http.StatusOK, rects)
}

func (s *Server) handleSessionMetrics(w http.ResponseWriter, r *http.Request) {
	sess, err := s.cfg.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics.Summarize(sess.Rectangles(), sess.Center))
}

func (s *Server) handleSessionImage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.cfg.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var opts []render.Option
	if r.URL.Query().Get("labels") == "true" {
		opts = append(opts, render.WithLabels())
	}
	rdr := render.NewAutoAdjust(opts...)
	rdr.AddRectangles(sess.Rectangles())
	data, err := render.PNG(rdr)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeBytes(w, contentTypes[pipeline.FormatPNG], data)
}

// mutateSession runs fn on the session named in the URL under its lock
// and stores the result.
func (s *Server) mutateSession(r *http.Request, fn func(*session.Session) error) error {
	id := chi.URLParam(r, "id")
	unlock := s.lockSession(id)
	defer unlock()

	sess, err := s.cfg.Sessions.Get(r.Context(), id)
	if err != nil {
		return err
	}
	if err := fn(sess); err != nil {
		return err
	}
	return s.cfg.Sessions.Set(r.Context(), sess)
}
