// Package server exposes the analysis pipeline over HTTP: feature
// extraction, risk scoring, graph intelligence and the typosquat scanner.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"scamgraph/feature"
	"scamgraph/graph"
	"scamgraph/risk"
	"scamgraph/typosquat"
)

// Server wires the subsystems behind the API routes. The graph store is the
// only shared mutable state and carries its own locking.
type Server struct {
	extractor feature.Extractor
	engine    *risk.Engine
	store     *graph.Store
	resolver  typosquat.Resolver
	scanOpts  typosquat.Options
}

// New assembles a server from its collaborators. scanOpts is the baseline
// scan configuration; per-request limits are layered on top.
func New(extractor feature.Extractor, engine *risk.Engine, store *graph.Store, resolver typosquat.Resolver, scanOpts typosquat.Options) *Server {
	return &Server{extractor: extractor, engine: engine, store: store, resolver: resolver, scanOpts: scanOpts}
}

// Router builds the chi router with rate limiting and request logging on
// the API surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(api chi.Router) {
		api.Use(rateLimit(rate.Every(2*time.Second), 30))
		api.Use(requestLogger)

		api.Post("/analyze", s.handleAnalyze)
		api.Get("/cluster", s.handleCluster)
		api.Get("/blocklist", s.handleBlocklist)
		api.Get("/stats", s.handleStats)
		api.Post("/scan", s.handleScan)
		api.Get("/health", s.handleHealth)
	})

	return r
}

// rateLimit rejects with 429 once the shared token bucket is exhausted,
// roughly 30 requests per minute across all API routes.
func rateLimit(r rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(r, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please slow down.")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond).String(),
			"remote", r.RemoteAddr,
		)
	})
}
