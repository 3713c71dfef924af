package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fiscalsync/conciliador-backend/internal/api/dto"
	"github.com/fiscalsync/conciliador-backend/internal/domain/reconcile"
)

// GetConfig handles GET /api/v1/config and returns the active default
// matching profile.
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Profile())
}

// UpdateConfig handles PUT /api/v1/config. The supplied profile replaces the
// default atomically; zero-valued fields inherit from the built-in defaults.
// In-flight requests keep the profile they started with.
func (h *Handler) UpdateConfig(c *gin.Context) {
	var p reconcile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, dto.CodeInvalidRequest, "malformed JSON body: "+err.Error())
		return
	}
	if p.ValueTolerancePct < 0 || p.ValueToleranceAbs < 0 || p.DateWindowDays < 0 {
		respondError(c, http.StatusBadRequest, dto.CodeInvalidRequest, "tolerances must be non-negative")
		return
	}
	if p.MinimumScore < 0 || p.MinimumScore > 1 {
		respondError(c, http.StatusBadRequest, dto.CodeInvalidRequest, "minimum_score must be between 0 and 1")
		return
	}

	applied := h.Service.UpdateProfile(p)
	c.JSON(http.StatusOK, applied)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:      "ok",
		RuleVersion: reconcile.RuleVersion,
	})
}
