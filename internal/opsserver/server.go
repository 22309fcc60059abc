// Package opsserver serves operational endpoints next to the public API.
package opsserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"skinrisk/internal"
)

// HealthFunc reports whether the service can take traffic
type HealthFunc func(ctx context.Context) error

// Server is the operations HTTP server
type Server struct {
	router *chi.Mux
	http   *http.Server
	logger *internal.Logger
}

// New builds the router. metrics may be nil, in which case /metrics is not mounted.
func New(port string, metrics http.Handler, health HealthFunc, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router: chi.NewRouter(),
		logger: logger.With("OpsServer"),
	}
	s.setupMiddleware()
	s.setupRoutes(metrics, health)

	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes(metrics http.Handler, health HealthFunc) {
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if health != nil {
			if err := health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	if metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", metrics)
	}

	s.router.Route("/debug/pprof", func(r chi.Router) {
		r.HandleFunc("/", pprof.Index)
		r.HandleFunc("/cmdline", pprof.Cmdline)
		r.HandleFunc("/profile", pprof.Profile)
		r.HandleFunc("/symbol", pprof.Symbol)
		r.HandleFunc("/trace", pprof.Trace)
		r.Handle("/{name}", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			pprof.Handler(chi.URLParam(req, "name")).ServeHTTP(w, req)
		}))
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving until Shutdown
func (s *Server) Start() error {
	s.logger.Info("operations server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
