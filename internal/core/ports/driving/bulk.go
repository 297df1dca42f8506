package driving

import (
	"context"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

// BulkDispatcher applies one operation to many records in a single request.
type BulkDispatcher interface {
	// Execute validates the request, asks for confirmation and sends it.
	// A declined confirmation returns domain.ErrAborted and a nil outcome.
	Execute(ctx context.Context, req BulkRequest, confirm Confirmer) (*BulkOutcome, error)

	// History returns recently dispatched runs, newest first.
	History(ctx context.Context, limit int) ([]domain.BulkRun, error)

	// Phase returns the dispatcher's current state.
	Phase() domain.BulkPhase
}

// BulkRequest is the user's input for one bulk invocation.
type BulkRequest struct {
	// Collection is the target collection.
	Collection string

	// Selection is the ordered list of selected record IDs.
	Selection []string

	// Kind is the operation to apply.
	Kind domain.OperationKind

	// Fields holds the raw key/value rows entered by the user.
	// Ignored for delete.
	Fields []domain.FieldEntry
}

// BulkOutcome is what the caller sees after a dispatched run.
type BulkOutcome struct {
	// RunID identifies the run in history.
	RunID string

	// Operation is the request that was sent.
	Operation domain.BulkOperation

	// Result is the store's aggregate result, relayed unchanged.
	Result *domain.BulkResult

	// Items is the refreshed collection listing, nil when no refresh happened.
	Items []domain.Record

	// Refreshed reports whether a refresh was attempted.
	Refreshed bool

	// RefreshErr holds a refresh failure. It never fails the operation.
	RefreshErr error

	// Inconsistent is set when the result counts do not account for the selection.
	Inconsistent bool
}
