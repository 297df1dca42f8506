package domain

import (
	"fmt"
	"time"
)

// OperationKind identifies a bulk operation.
type OperationKind string

// Available bulk operations.
const (
	// OperationUpdateMetadata merges the same fields into every selected record.
	OperationUpdateMetadata OperationKind = "update_metadata"

	// OperationMoveZone sets the zone of every selected record.
	OperationMoveZone OperationKind = "move_zone"

	// OperationDelete removes every selected record from its collection.
	OperationDelete OperationKind = "delete"
)

// ZoneDataKey is the operation_data key carrying the target zone for move_zone.
const ZoneDataKey = "new_zone"

// AllOperationKinds returns the supported operations in menu order.
func AllOperationKinds() []OperationKind {
	return []OperationKind{OperationUpdateMetadata, OperationMoveZone, OperationDelete}
}

// ParseOperationKind converts a string into an OperationKind.
func ParseOperationKind(s string) (OperationKind, error) {
	kind := OperationKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
	return kind, nil
}

// IsValid returns true if the kind is recognised.
func (k OperationKind) IsValid() bool {
	switch k {
	case OperationUpdateMetadata, OperationMoveZone, OperationDelete:
		return true
	default:
		return false
	}
}

// IsDestructive reports whether the operation cannot be undone.
func (k OperationKind) IsDestructive() bool {
	return k == OperationDelete
}

// String returns the string representation.
func (k OperationKind) String() string {
	return string(k)
}

// Description returns a human-readable label.
func (k OperationKind) Description() string {
	switch k {
	case OperationUpdateMetadata:
		return "Actualizar Metadata"
	case OperationMoveZone:
		return "Cambiar Zona"
	case OperationDelete:
		return "Eliminar Items"
	default:
		return "Unknown"
	}
}

// FieldEntry is one raw key/value row entered by the user.
type FieldEntry struct {
	Key   string
	Value string
}

// BulkOperation is the single request sent to the record store for a bulk run.
type BulkOperation struct {
	// ItemIDs is the ordered selection.
	ItemIDs []string `json:"item_ids"`

	// Operation is the kind of change to apply.
	Operation OperationKind `json:"operation"`

	// OperationData is the operation-specific payload.
	OperationData map[string]any `json:"operation_data"`
}

// BulkResult is the aggregate outcome reported by the record store.
// It is built once per invocation and not modified afterwards.
type BulkResult struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors,omitempty"`
}

// Total returns success plus error counts.
func (r BulkResult) Total() int {
	return r.SuccessCount + r.ErrorCount
}

// Consistent reports whether the counts account for exactly n items.
func (r BulkResult) Consistent(n int) bool {
	return r.SuccessCount >= 0 && r.ErrorCount >= 0 && r.Total() == n
}

// HasErrors reports whether any item failed.
func (r BulkResult) HasErrors() bool {
	return r.ErrorCount > 0
}

// Summary renders the counts the way the console reports them.
func (r BulkResult) Summary() string {
	return fmt.Sprintf("%d exitosos, %d errores", r.SuccessCount, r.ErrorCount)
}

// BulkPhase is the state of a single bulk invocation.
type BulkPhase string

// Bulk invocation phases.
// Idle -> Validating -> (Confirming) -> Executing -> Succeeded | Failed.
const (
	BulkPhaseIdle       BulkPhase = "idle"
	BulkPhaseValidating BulkPhase = "validating"
	BulkPhaseConfirming BulkPhase = "confirming"
	BulkPhaseExecuting  BulkPhase = "executing"
	BulkPhaseSucceeded  BulkPhase = "succeeded"
	BulkPhaseFailed     BulkPhase = "failed"
	BulkPhaseAborted    BulkPhase = "aborted"
)

// IsTerminal reports whether the phase ends an invocation.
func (p BulkPhase) IsTerminal() bool {
	return p == BulkPhaseSucceeded || p == BulkPhaseFailed || p == BulkPhaseAborted
}

// BulkRun is the recorded history of one dispatched bulk operation.
type BulkRun struct {
	// ID is a unique run identifier.
	ID string `json:"id"`

	// Collection is the target collection.
	Collection string `json:"collection"`

	// Operation is the kind that was dispatched.
	Operation OperationKind `json:"operation"`

	// ItemIDs is the selection that was sent.
	ItemIDs []string `json:"item_ids"`

	// OperationData is the payload that was sent.
	OperationData map[string]any `json:"operation_data,omitempty"`

	// Phase is the terminal phase reached.
	Phase BulkPhase `json:"phase"`

	// Result is the relayed result, nil when the transport failed.
	Result *BulkResult `json:"result,omitempty"`

	// Error is the transport failure message, if any.
	Error string `json:"error,omitempty"`

	// StartedAt is when the request was sent.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the response (or failure) arrived.
	FinishedAt time.Time `json:"finished_at"`
}

// Duration returns how long the request took.
func (r *BulkRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
