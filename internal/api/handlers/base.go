package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/fiscalsync/conciliador-backend/internal/api/dto"
	"github.com/fiscalsync/conciliador-backend/internal/application/service"
	"github.com/fiscalsync/conciliador-backend/internal/infrastructure/storage"
)

// Handler carries the shared dependencies for all route handlers.
type Handler struct {
	Service *service.ReconcileService
	Repo    storage.Repository
	Logger  *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(svc *service.ReconcileService, repo storage.Repository, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Service: svc, Repo: repo, Logger: logger}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.APIError{Code: code, Message: message})
}
