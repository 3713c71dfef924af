package storage

import "time"

// ReconciliationRecord is one persisted pipeline decision. The full request
// and result payloads are kept as JSON for audit replay; the flat columns
// exist for filtering and statistics.
type ReconciliationRecord struct {
	ID                string    `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	TransactionDate   string    `json:"transaction_date"`
	TransactionAmount float64   `json:"transaction_amount"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Status            string    `json:"status"`
	Reconciled        bool      `json:"reconciled"`
	Confidence        float64   `json:"confidence"`
	NeedsHumanReview  bool      `json:"needs_human_review"`
	LedgerEntryID     string    `json:"ledger_entry_id,omitempty"`
	DivergenceCount   int       `json:"divergence_count"`
	RuleVersion       string    `json:"rule_version"`
	RequestJSON       string    `json:"-"`
	ResultJSON        string    `json:"-"`
}

// Stats summarizes the stored reconciliation history.
type Stats struct {
	TotalRuns       int            `json:"total_runs"`
	ReconciledCount int            `json:"reconciled_count"`
	ReviewCount     int            `json:"review_count"`
	AvgConfidence   float64        `json:"avg_confidence"`
	StatusCounts    map[string]int `json:"status_counts"`
}

// RecordFilters narrows ListRecords results.
type RecordFilters struct {
	Status      string // Filter by status label (empty = all)
	NeedsReview bool   // Only records flagged for human review
	Limit       int    // Max results (0 = default 50)
	Offset      int    // Pagination offset
}
