package storage

import (
	"fmt"
	"sort"
	"sync"
)

// MockRepository is an in-memory Repository implementation for tests.
type MockRepository struct {
	mu      sync.Mutex
	records map[string]*ReconciliationRecord

	// SaveErr, when set, is returned by SaveRecord
	SaveErr error
}

var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates an empty in-memory repository
func NewMockRepository() *MockRepository {
	return &MockRepository{records: make(map[string]*ReconciliationRecord)}
}

func (m *MockRepository) SaveRecord(record *ReconciliationRecord) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *record
	m.records[record.ID] = &cp
	return nil
}

func (m *MockRepository) GetRecord(id string) (*ReconciliationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cp := *record
	return &cp, nil
}

func (m *MockRepository) ListRecords(filters RecordFilters) ([]*ReconciliationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var records []*ReconciliationRecord
	for _, r := range m.records {
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		if filters.NeedsReview && !r.NeedsHumanReview {
			continue
		}
		cp := *r
		records = append(records, &cp)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if filters.Offset > 0 {
		if filters.Offset >= len(records) {
			return nil, nil
		}
		records = records[filters.Offset:]
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (m *MockRepository) GetStats() (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := &Stats{StatusCounts: make(map[string]int)}
	var confidenceSum float64
	for _, r := range m.records {
		stats.TotalRuns++
		if r.Reconciled {
			stats.ReconciledCount++
		}
		if r.NeedsHumanReview {
			stats.ReviewCount++
		}
		stats.StatusCounts[r.Status]++
		confidenceSum += r.Confidence
	}
	if stats.TotalRuns > 0 {
		stats.AvgConfidence = confidenceSum / float64(stats.TotalRuns)
	}
	return stats, nil
}

func (m *MockRepository) Close() error { return nil }

// Count returns the number of stored records.
func (m *MockRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
