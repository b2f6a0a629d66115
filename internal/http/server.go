// Package http provides the API server, its middleware and the metrics server.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/ephemeral/internal/config"
	ephemeralHTTP "github.com/allisson/ephemeral/internal/ephemeral/http"
	"github.com/allisson/ephemeral/internal/metrics"
)

// ReadinessCheck reports whether the keystore backend can serve requests.
type ReadinessCheck func(ctx context.Context) error

// Server represents the API HTTP server.
type Server struct {
	server    *http.Server
	router    *gin.Engine
	logger    *slog.Logger
	readiness ReadinessCheck
}

// NewServer creates a new API server. The router must be installed with
// SetupRouter before Start.
func NewServer(readiness ReadinessCheck, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		logger:    logger,
		readiness: readiness,
		server:    newHTTPServer(host, port, nil),
	}
}

// newHTTPServer returns an http.Server with the timeouts shared by the API and
// metrics listeners.
func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// SetupRouter builds the gin engine with middleware and all routes.
//
// ctx bounds background work started by middleware (rate limiter cleanup).
// metricsProvider may be nil when metrics are disabled.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	ephemeralHandler *ephemeralHTTP.EphemeralHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	ephemeral := v1.Group("/ephemeral")
	{
		ephemeral.POST("/keypairs", ephemeralHandler.GenerateKeypairHandler)
		ephemeral.DELETE("/keypairs", ephemeralHandler.DeleteKeypairHandler)
		ephemeral.POST("/box", ephemeralHandler.BoxHandler)
		ephemeral.POST("/unbox", ephemeralHandler.UnboxHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.readiness == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"keystore": "error"},
		})
		return
	}

	if err := s.readiness(ctx); err != nil {
		s.logger.Warn("keystore not ready", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"keystore": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"keystore": "ok"},
	})
}
