package storage

import "errors"

// ErrNotFound is returned when no record exists for the requested run ID.
var ErrNotFound = errors.New("record not found")

// Repository defines the storage interface for reconciliation history.
// This allows swapping implementations (SQLite, PostgreSQL, etc.) and makes
// testing with mocks straightforward.
type Repository interface {
	// SaveRecord persists a reconciliation decision
	SaveRecord(record *ReconciliationRecord) error

	// GetRecord retrieves a record by its run ID
	GetRecord(id string) (*ReconciliationRecord, error)

	// ListRecords returns records matching the given filters, newest first
	ListRecords(filters RecordFilters) ([]*ReconciliationRecord, error)

	// GetStats returns aggregate statistics over the stored history
	GetStats() (*Stats, error)

	Close() error
}
