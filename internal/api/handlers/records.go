package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fiscalsync/conciliador-backend/internal/api/dto"
	"github.com/fiscalsync/conciliador-backend/internal/infrastructure/storage"
)

// ListRecords handles GET /api/v1/records with optional status, needs_review,
// limit and offset query parameters.
func (h *Handler) ListRecords(c *gin.Context) {
	filters := storage.RecordFilters{
		Status: c.Query("status"),
	}
	if c.Query("needs_review") == "true" {
		filters.NeedsReview = true
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(c, http.StatusBadRequest, dto.CodeInvalidRequest, "limit must be a non-negative integer")
			return
		}
		filters.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(c, http.StatusBadRequest, dto.CodeInvalidRequest, "offset must be a non-negative integer")
			return
		}
		filters.Offset = n
	}

	records, err := h.Repo.ListRecords(filters)
	if err != nil {
		h.Logger.Error("failed to list records", "error", err)
		respondError(c, http.StatusInternalServerError, dto.CodeInternal, "failed to list records")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"count":   len(records),
	})
}

// GetRecord handles GET /api/v1/records/:id.
func (h *Handler) GetRecord(c *gin.Context) {
	id := c.Param("id")

	record, err := h.Repo.GetRecord(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, dto.CodeNotFound, "record not found: "+id)
			return
		}
		h.Logger.Error("failed to get record", "id", id, "error", err)
		respondError(c, http.StatusInternalServerError, dto.CodeInternal, "failed to get record")
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetStats handles GET /api/v1/stats.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.Repo.GetStats()
	if err != nil {
		h.Logger.Error("failed to get stats", "error", err)
		respondError(c, http.StatusInternalServerError, dto.CodeInternal, "failed to get stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
