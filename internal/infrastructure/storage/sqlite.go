// Package storage persists reconciliation decisions for audit and review.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for reconciliation records.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Storage{db: db}

	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reconciliation_records (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		transaction_date TEXT,
		transaction_amount REAL,
		description TEXT,
		category TEXT,
		status TEXT NOT NULL,
		reconciled INTEGER NOT NULL,
		confidence REAL NOT NULL,
		needs_human_review INTEGER NOT NULL,
		ledger_entry_id TEXT,
		divergence_count INTEGER NOT NULL DEFAULT 0,
		rule_version TEXT NOT NULL,
		request_json TEXT,
		result_json TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_records_status ON reconciliation_records(status);
	CREATE INDEX IF NOT EXISTS idx_records_created_at ON reconciliation_records(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// SaveRecord persists a reconciliation decision
func (s *Storage) SaveRecord(record *ReconciliationRecord) error {
	query := `
	INSERT OR REPLACE INTO reconciliation_records
	(id, created_at, transaction_date, transaction_amount, description,
	 category, status, reconciled, confidence, needs_human_review,
	 ledger_entry_id, divergence_count, rule_version, request_json, result_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		record.ID,
		record.CreatedAt.UTC().Format(time.RFC3339Nano),
		record.TransactionDate,
		record.TransactionAmount,
		record.Description,
		record.Category,
		record.Status,
		record.Reconciled,
		record.Confidence,
		record.NeedsHumanReview,
		record.LedgerEntryID,
		record.DivergenceCount,
		record.RuleVersion,
		record.RequestJSON,
		record.ResultJSON,
	)

	return err
}

// GetRecord retrieves a record by its run ID
func (s *Storage) GetRecord(id string) (*ReconciliationRecord, error) {
	query := selectColumns + ` WHERE id = ?`

	record, err := scanRecord(s.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return record, err
}

// ListRecords returns records matching the given filters, newest first
func (s *Storage) ListRecords(filters RecordFilters) ([]*ReconciliationRecord, error) {
	query := selectColumns
	var args []interface{}
	var where []string

	if filters.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filters.Status)
	}
	if filters.NeedsReview {
		where = append(where, "needs_human_review = 1")
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, filters.Offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []*ReconciliationRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// GetStats returns aggregate statistics over the stored history
func (s *Storage) GetStats() (*Stats, error) {
	stats := &Stats{StatusCounts: make(map[string]int)}

	var avg sql.NullFloat64
	err := s.db.QueryRow(`
	SELECT COUNT(*),
	       COALESCE(SUM(reconciled), 0),
	       COALESCE(SUM(needs_human_review), 0),
	       AVG(confidence)
	FROM reconciliation_records
	`).Scan(&stats.TotalRuns, &stats.ReconciledCount, &stats.ReviewCount, &avg)
	if err != nil {
		return nil, err
	}
	if avg.Valid {
		stats.AvgConfidence = avg.Float64
	}

	rows, err := s.db.Query(`
	SELECT status, COUNT(*) FROM reconciliation_records GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.StatusCounts[status] = count
	}
	return stats, rows.Err()
}

const selectColumns = `
	SELECT id, created_at, transaction_date, transaction_amount, description,
	       category, status, reconciled, confidence, needs_human_review,
	       ledger_entry_id, divergence_count, rule_version, request_json, result_json
	FROM reconciliation_records`

// scannable covers *sql.Row and *sql.Rows
type scannable interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scannable) (*ReconciliationRecord, error) {
	record := &ReconciliationRecord{}
	var createdAt string
	var ledgerEntryID sql.NullString

	err := row.Scan(
		&record.ID,
		&createdAt,
		&record.TransactionDate,
		&record.TransactionAmount,
		&record.Description,
		&record.Category,
		&record.Status,
		&record.Reconciled,
		&record.Confidence,
		&record.NeedsHumanReview,
		&ledgerEntryID,
		&record.DivergenceCount,
		&record.RuleVersion,
		&record.RequestJSON,
		&record.ResultJSON,
	)
	if err != nil {
		return nil, err
	}

	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		record.CreatedAt = t
	}
	if ledgerEntryID.Valid {
		record.LedgerEntryID = ledgerEntryID.String
	}
	return record, nil
}
