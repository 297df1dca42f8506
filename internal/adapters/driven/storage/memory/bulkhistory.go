package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driven"
)

// Ensure BulkHistoryStore implements the interface.
var _ driven.BulkHistoryStore = (*BulkHistoryStore)(nil)

// BulkHistoryStore is an in-memory implementation of driven.BulkHistoryStore.
type BulkHistoryStore struct {
	mu   sync.RWMutex
	runs map[string]domain.BulkRun
}

// NewBulkHistoryStore creates a new in-memory history store.
func NewBulkHistoryStore() *BulkHistoryStore {
	return &BulkHistoryStore{
		runs: make(map[string]domain.BulkRun),
	}
}

// Save stores or updates a run.
func (s *BulkHistoryStore) Save(_ context.Context, run domain.BulkRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// Get retrieves a run by ID.
func (s *BulkHistoryStore) Get(_ context.Context, id string) (*domain.BulkRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// List returns the most recent runs, newest first.
func (s *BulkHistoryStore) List(_ context.Context, limit int) ([]domain.BulkRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.BulkRun, 0, len(s.runs))
	for _, run := range s.runs {
		result = append(result, run)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
