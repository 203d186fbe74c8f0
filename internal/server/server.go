// Package server exposes the scheduler's health and Prometheus metrics over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonesrussell/fightcrawl/internal/logger"
)

// Server timeouts.
const (
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
)

// Config configures the HTTP server.
type Config struct {
	Addr    string
	Version string
	Debug   bool
}

// Server is an HTTP server with lifecycle management.
type Server struct {
	router *gin.Engine
	server *http.Server
	logger logger.Interface
}

// New builds the router: GET/HEAD /health reports status, GET /metrics
// serves gatherer in the Prometheus text format.
func New(cfg Config, log logger.Interface, status StatusFunc, gatherer prometheus.Gatherer) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	log = log.WithComponent("http")

	router := gin.New()
	router.Use(recoveryMiddleware(log))
	router.Use(loggerMiddleware(log))

	registerHealthRoutes(router, cfg.Version, status)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return &Server{
		router: router,
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      router,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			IdleTimeout:  DefaultIdleTimeout,
		},
		logger: log,
	}
}

// Handler returns the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// StartAsync starts listening in a goroutine. The returned channel receives
// a listen error, if any, and is closed when the server stops.
func (s *Server) StartAsync() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logger.Info("Starting HTTP server", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()
	return errCh
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
