package dto

import "github.com/fiscalsync/conciliador-backend/internal/domain/reconcile"

// ReconcileResponse wraps a pipeline result with its persisted run ID.
type ReconcileResponse struct {
	RunID string `json:"run_id"`
	*reconcile.Result
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status      string `json:"status"`
	RuleVersion string `json:"rule_version"`
}

// APIError is the uniform error body for all non-2xx responses.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned by the API.
const (
	CodeInvalidRequest = "invalid_request"
	CodeNotFound       = "not_found"
	CodeInternal       = "internal_error"
)
