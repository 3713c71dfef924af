package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fiscalsync/conciliador-backend/internal/api/dto"
)

// Reconcile handles POST /api/v1/reconcile. The request is schema-validated
// here; anything that passes validation always produces a decision, even if
// that decision is the processing-error fallback.
func (h *Handler) Reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, dto.CodeInvalidRequest, "malformed JSON body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, dto.CodeInvalidRequest, err.Error())
		return
	}

	outcome := h.Service.Reconcile(req.ToDomain())
	c.JSON(http.StatusOK, dto.ReconcileResponse{
		RunID:  outcome.RunID,
		Result: outcome.Result,
	})
}
