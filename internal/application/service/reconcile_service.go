// Package service wires the reconciliation pipeline to storage and exposes
// the operations the API and CLI layers call.
package service

import (
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/fiscalsync/conciliador-backend/internal/domain/reconcile"
	"github.com/fiscalsync/conciliador-backend/internal/infrastructure/storage"
)

// ReconcileService runs the pipeline and records every decision. The default
// profile is swapped atomically on update so in-flight requests keep the
// snapshot they started with; profile fields are never mutated in place.
type ReconcileService struct {
	repo    storage.Repository
	logger  *slog.Logger
	profile atomic.Pointer[reconcile.Profile]
}

// NewReconcileService creates a service with the given default profile.
// repo may be nil, in which case decisions are not persisted.
func NewReconcileService(repo storage.Repository, defaults reconcile.Profile, logger *slog.Logger) *ReconcileService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &ReconcileService{
		repo:   repo,
		logger: logger,
	}
	s.profile.Store(&defaults)
	return s
}

// Profile returns the current default matching profile.
func (s *ReconcileService) Profile() reconcile.Profile {
	return *s.profile.Load()
}

// UpdateProfile replaces the default profile for subsequent requests.
// Partial profiles inherit the current values for unset fields.
func (s *ReconcileService) UpdateProfile(p reconcile.Profile) reconcile.Profile {
	merged := p.Merge(s.Profile())
	s.profile.Store(&merged)
	s.logger.Info("default profile updated",
		"minimum_score", merged.MinimumScore,
		"value_tolerance_abs", merged.ValueToleranceAbs,
		"date_window_days", merged.DateWindowDays)
	return merged
}

// Outcome pairs a pipeline result with its persisted run identifier.
type Outcome struct {
	RunID  string
	Result *reconcile.Result
}

// Reconcile runs the pipeline for one request and persists the decision.
// A storage failure is logged but never blocks the caller: the decision
// itself is always returned.
func (s *ReconcileService) Reconcile(req reconcile.Request) Outcome {
	pipeline := reconcile.NewPipeline(s.Profile())
	result := pipeline.Run(req)

	runID := uuid.NewString()
	s.persist(runID, req, result)

	s.logger.Info("reconciliation completed",
		"run_id", runID,
		"status", result.Details.Status,
		"confidence", result.Confidence,
		"needs_review", result.NeedsHumanReview)

	return Outcome{RunID: runID, Result: result}
}

func (s *ReconcileService) persist(runID string, req reconcile.Request, result *reconcile.Result) {
	if s.repo == nil {
		return
	}

	requestJSON, _ := json.Marshal(req)
	resultJSON, _ := json.Marshal(result)

	record := &storage.ReconciliationRecord{
		ID:                runID,
		CreatedAt:         time.Now().UTC(),
		TransactionDate:   req.Transaction.Date,
		TransactionAmount: req.Transaction.Amount,
		Description:       req.Transaction.Description,
		Category:          string(reconcile.Classify(req.Transaction.Description, req.CandidateCount())),
		Status:            string(result.Details.Status),
		Reconciled:        result.Details.Reconciled,
		Confidence:        result.Confidence,
		NeedsHumanReview:  result.NeedsHumanReview,
		LedgerEntryID:     result.Details.LedgerEntryID,
		DivergenceCount:   len(result.Details.Divergences),
		RuleVersion:       result.RuleVersion,
		RequestJSON:       string(requestJSON),
		ResultJSON:        string(resultJSON),
	}

	if err := s.repo.SaveRecord(record); err != nil {
		s.logger.Warn("failed to persist reconciliation record", "run_id", runID, "error", err)
	}
}
