package driven

import (
	"context"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

// BulkHistoryStore persists dispatched bulk runs.
type BulkHistoryStore interface {
	// Save stores a run.
	Save(ctx context.Context, run domain.BulkRun) error

	// Get retrieves a run by ID.
	Get(ctx context.Context, id string) (*domain.BulkRun, error)

	// List returns the most recent runs, newest first.
	// A limit of zero or less returns every run.
	List(ctx context.Context, limit int) ([]domain.BulkRun, error)
}
