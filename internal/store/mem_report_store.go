package store

import (
	"context"
	"sort"
	"sync"

	"github.com/repofit/repofit/internal/analysis"
	"github.com/repofit/repofit/pkg/api"
)

// Compile-time check: *MemReportStore implements analysis.ReportStore.
var _ analysis.ReportStore = (*MemReportStore)(nil)

// MemReportStore keeps reports in memory. Used by the CLI and in tests.
type MemReportStore struct {
	mu      sync.RWMutex
	reports map[string]api.Report
}

// NewMemReportStore creates an empty MemReportStore.
func NewMemReportStore() *MemReportStore {
	return &MemReportStore{reports: map[string]api.Report{}}
}

// Save stores or replaces a report by ID.
func (s *MemReportStore) Save(_ context.Context, r api.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.Id] = r
	return nil
}

// Get retrieves a report by ID. Returns nil, nil if not found.
func (s *MemReportStore) Get(_ context.Context, id string) (*api.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, nil //nolint:nilnil
	}
	return &r, nil
}

// List returns all reports ordered by creation time.
func (s *MemReportStore) List(_ context.Context) ([]api.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]api.Report, 0, len(s.reports))
	for _, r := range s.reports {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a report by ID. Deleting a missing report is a no-op.
func (s *MemReportStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reports, id)
	return nil
}
