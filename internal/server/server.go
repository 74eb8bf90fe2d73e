// Package server exposes layouts and gallery scenes over a small JSON API
// for a WebXR front end.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/san-kum/galleryvr/internal/gallery"
	"github.com/san-kum/galleryvr/internal/layout"
	"github.com/san-kum/galleryvr/internal/scene"
)

// Galleries is the read side of the gallery store.
type Galleries interface {
	List() ([]gallery.Gallery, error)
	Get(id string) (*gallery.Gallery, error)
}

type Server struct {
	galleries Galleries
	engine    *layout.Engine
	logger    *log.Logger
}

func New(g Galleries, e *layout.Engine, logger *log.Logger) *Server {
	if e == nil {
		e = layout.NewEngine(layout.StandardDefaults())
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{galleries: g, engine: e, logger: logger}
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Get("/layout", s.layout)
		r.Route("/galleries", func(r chi.Router) {
			r.Get("/", s.listGalleries)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getGallery)
				r.Get("/layout", s.galleryLayout)
				r.Get("/scene", s.galleryScene)
			})
		})
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"dur", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// layout computes placements from query parameters. Missing or malformed
// numbers are passed to the engine as NaN and replaced by its defaults. An
// absent archetype means circular; an empty one is unknown and places nothing.
func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	count := queryFloat(q.Get("count"))
	if layout.Validate(count, 0) > layout.MaxCount {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "count exceeds " + strconv.Itoa(layout.MaxCount)})
		return
	}
	req := layout.Request{
		Archetype: layout.Archetype(q.Get("archetype")),
		Count:     layout.ValidCount(count),
		Radius:    queryFloat(q.Get("radius")),
		Spacing:   queryFloat(q.Get("spacing")),
		Height:    queryFloat(q.Get("height")),
	}
	if !q.Has("archetype") {
		req.Archetype = layout.Circular
	}
	s.writeJSON(w, http.StatusOK, layoutResponse{
		Request:    layout.Sanitize(req, s.engine.Defaults()),
		Placements: s.engine.Generate(req),
	})
}

func (s *Server) listGalleries(w http.ResponseWriter, r *http.Request) {
	gs, err := s.galleries.List()
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]gallerySummary, 0, len(gs))
	for _, g := range gs {
		out = append(out, gallerySummary{
			ID:        g.ID,
			Name:      g.Name,
			Layout:    g.Layout,
			Artworks:  len(g.Artworks),
			Thumbnail: g.Thumbnail,
			CreatedAt: g.CreatedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) getGallery(w http.ResponseWriter, r *http.Request) {
	g, err := s.galleries.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

func (s *Server) galleryLayout(w http.ResponseWriter, r *http.Request) {
	g, err := s.galleries.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	req := layout.Sanitize(g.LayoutRequest(), s.engine.Defaults())
	s.writeJSON(w, http.StatusOK, layoutResponse{Request: req, Placements: s.engine.Generate(req)})
}

func (s *Server) galleryScene(w http.ResponseWriter, r *http.Request) {
	g, err := s.galleries.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	sc := scene.Build(g, s.engine)
	w.Header().Set("Content-Type", "application/json")
	if err := sc.WriteJSON(w); err != nil {
		s.logger.Error("write scene", "gallery", g.ID, "err", err)
	}
}

type layoutResponse struct {
	Request    layout.Request     `json:"request"`
	Placements []layout.Placement `json:"placements"`
}

type gallerySummary struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Layout    layout.Archetype `json:"layout"`
	Artworks  int              `json:"artworks"`
	Thumbnail string           `json:"thumbnail,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

func queryFloat(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, gallery.ErrNotFound) {
		status = http.StatusNotFound
	} else {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
