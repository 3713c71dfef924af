// Package api exposes the reconciliation engine over HTTP for the
// dashboard frontend.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fiscalsync/conciliador-backend/internal/api/handlers"
	"github.com/fiscalsync/conciliador-backend/internal/api/middleware"
	"github.com/fiscalsync/conciliador-backend/internal/application/service"
	"github.com/fiscalsync/conciliador-backend/internal/infrastructure/config"
	"github.com/fiscalsync/conciliador-backend/internal/infrastructure/storage"
)

// Server wraps the HTTP server and its routes.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the router and binds it to the configured port.
func NewServer(cfg *config.Config, svc *service.ReconcileService, repo storage.Repository, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	h := handlers.NewHandler(svc, repo, logger)

	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/reconcile", h.Reconcile)
		v1.GET("/records", h.ListRecords)
		v1.GET("/records/:id", h.GetRecord)
		v1.GET("/stats", h.GetStats)
		v1.GET("/config", h.GetConfig)
		v1.PUT("/config", h.UpdateConfig)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
