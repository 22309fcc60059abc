// Package ui serves the assessment JSON API.
package ui

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skinrisk/adapters/datareadiness/coercer"
	"skinrisk/app"
	"skinrisk/internal"
)

// Server represents the API server
type Server struct {
	router      *gin.Engine
	http        *http.Server
	service     *app.AssessmentService
	coercer     *coercer.ValueCoercer
	strictInput bool
	logger      *internal.Logger
}

// Config holds API server settings
type Config struct {
	Port        string
	GinMode     string
	StrictInput bool
}

// NewServer creates the server and registers every route
func NewServer(cfg Config, service *app.AssessmentService, logger *internal.Logger) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router:      gin.New(),
		service:     service,
		coercer:     coercer.NewValueCoercer(coercer.DefaultCoercionConfig()),
		strictInput: cfg.StrictInput,
		logger:      logger.With("Server"),
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.http = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/schema", s.handleSchema)
		v1.GET("/tiers", s.handleTiers)
		v1.POST("/assess", s.handleAssess)
		v1.POST("/assess/record", s.handleAssessRecord)
		v1.POST("/clean", s.handleClean)
	}
}

// Router exposes the gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving until Shutdown
func (s *Server) Start() error {
	s.logger.Info("API server listening on %s (model %s)", s.http.Addr, s.service.ModelName())
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
