package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/curio-cli/internal/logger"
)

// Ensure BulkDispatcher implements the interface.
var _ driving.BulkDispatcher = (*BulkDispatcher)(nil)

// BulkConfig configures the dispatcher.
type BulkConfig struct {
	// ConsistencyCheck flags results whose counts do not match the selection.
	ConsistencyCheck bool

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// BulkDispatcher validates, confirms and sends bulk operations.
// At most one operation is in flight per dispatcher.
type BulkDispatcher struct {
	store   driven.RecordStore
	history driven.BulkHistoryStore
	guard   driven.OperationGuard
	cfg     BulkConfig

	executing atomic.Bool

	mu    sync.RWMutex
	phase domain.BulkPhase
}

// NewBulkDispatcher creates a new bulk dispatcher.
// The history store and guard are optional (can be nil).
func NewBulkDispatcher(
	store driven.RecordStore,
	history driven.BulkHistoryStore,
	guard driven.OperationGuard,
	cfg BulkConfig,
) *BulkDispatcher {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &BulkDispatcher{
		store:   store,
		history: history,
		guard:   guard,
		cfg:     cfg,
		phase:   domain.BulkPhaseIdle,
	}
}

// Phase returns the dispatcher's current state.
func (d *BulkDispatcher) Phase() domain.BulkPhase {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.phase
}

func (d *BulkDispatcher) setPhase(p domain.BulkPhase) {
	d.mu.Lock()
	d.phase = p
	d.mu.Unlock()
	logger.Debug("Bulk phase: %s", p)
}

// Execute validates the request, asks for confirmation and sends it as a
// single request. Validation errors and declined confirmations never reach
// the store.
func (d *BulkDispatcher) Execute(
	ctx context.Context, req driving.BulkRequest, confirm driving.Confirmer,
) (*driving.BulkOutcome, error) {
	if !d.executing.CompareAndSwap(false, true) {
		return nil, domain.ErrOperationInProgress
	}
	defer d.executing.Store(false)

	logger.Section("Bulk Operation")
	d.setPhase(domain.BulkPhaseValidating)

	op, err := BuildBulkOperation(req)
	if err != nil {
		logger.Debug("Validation failed: %v", err)
		d.setPhase(domain.BulkPhaseFailed)
		return nil, err
	}
	logger.Debug("Operation %s on %d items in %q", op.Operation, len(op.ItemIDs), req.Collection)

	if confirm == nil {
		d.setPhase(domain.BulkPhaseFailed)
		return nil, domain.ErrConfirmationRequired
	}
	d.setPhase(domain.BulkPhaseConfirming)
	ok, err := confirm.Confirm(ctx, BulkPrompt(op))
	if err != nil {
		d.setPhase(domain.BulkPhaseFailed)
		return nil, fmt.Errorf("confirm bulk operation: %w", err)
	}
	if !ok {
		logger.Info("Bulk operation declined")
		d.setPhase(domain.BulkPhaseAborted)
		return nil, domain.ErrAborted
	}

	if d.guard != nil {
		release, err := d.guard.TryLock(req.Collection)
		if err != nil {
			d.setPhase(domain.BulkPhaseFailed)
			return nil, err
		}
		defer release()
	}

	d.setPhase(domain.BulkPhaseExecuting)
	run := domain.BulkRun{
		ID:            uuid.New().String(),
		Collection:    req.Collection,
		Operation:     op.Operation,
		ItemIDs:       op.ItemIDs,
		OperationData: op.OperationData,
		StartedAt:     d.cfg.Now(),
	}

	// Once sent the request runs to completion.
	result, sendErr := d.store.BulkOperation(context.WithoutCancel(ctx), req.Collection, op)
	run.FinishedAt = d.cfg.Now()

	if sendErr != nil {
		logger.Error("Bulk operation failed: %v", sendErr)
		run.Phase = domain.BulkPhaseFailed
		run.Error = sendErr.Error()
		d.record(ctx, run)
		d.setPhase(domain.BulkPhaseFailed)
		return nil, fmt.Errorf("bulk %s: %w", op.Operation, sendErr)
	}
	if result == nil {
		result = &domain.BulkResult{}
	}

	run.Phase = domain.BulkPhaseSucceeded
	run.Result = result
	d.record(ctx, run)
	d.setPhase(domain.BulkPhaseSucceeded)
	logger.Info("Bulk result: %s", result.Summary())

	outcome := &driving.BulkOutcome{
		RunID:     run.ID,
		Operation: op,
		Result:    result,
	}

	if d.cfg.ConsistencyCheck && !result.Consistent(len(op.ItemIDs)) {
		logger.Warn("Result accounts for %d of %d items", result.Total(), len(op.ItemIDs))
		outcome.Inconsistent = true
	}

	if result.SuccessCount > 0 {
		outcome.Refreshed = true
		items, err := d.store.GetCollection(ctx, req.Collection)
		if err != nil {
			logger.Warn("Refresh after bulk operation failed: %v", err)
			outcome.RefreshErr = err
		} else {
			outcome.Items = items
		}
	}

	return outcome, nil
}

// History returns recently dispatched runs, newest first.
func (d *BulkDispatcher) History(ctx context.Context, limit int) ([]domain.BulkRun, error) {
	if d.history == nil {
		return []domain.BulkRun{}, nil
	}
	return d.history.List(ctx, limit)
}

// record saves a run. History is best effort.
func (d *BulkDispatcher) record(ctx context.Context, run domain.BulkRun) {
	if d.history == nil {
		return
	}
	if err := d.history.Save(context.WithoutCancel(ctx), run); err != nil {
		logger.Warn("Failed to record bulk run %s: %v", run.ID, err)
	}
}

// BuildBulkOperation validates a request and builds the payload that will be
// sent. Duplicate ids are dropped, keeping the first occurrence.
func BuildBulkOperation(req driving.BulkRequest) (domain.BulkOperation, error) {
	ids := dedupe(req.Selection)
	if len(ids) == 0 {
		return domain.BulkOperation{}, &domain.ValidationError{Err: domain.ErrEmptySelection}
	}

	if !req.Kind.IsValid() {
		return domain.BulkOperation{}, fmt.Errorf("%w: %q", domain.ErrUnknownOperation, req.Kind)
	}

	data, err := operationData(req.Kind, req.Fields)
	if err != nil {
		return domain.BulkOperation{}, err
	}

	return domain.BulkOperation{
		ItemIDs:       ids,
		Operation:     req.Kind,
		OperationData: data,
	}, nil
}

func operationData(kind domain.OperationKind, fields []domain.FieldEntry) (map[string]any, error) {
	switch kind {
	case domain.OperationUpdateMetadata:
		data := make(map[string]any)
		for _, f := range fields {
			if f.Key == "" || f.Value == "" {
				continue
			}
			data[f.Key] = f.Value
		}
		if len(data) == 0 {
			return nil, &domain.ValidationError{Field: kind.String(), Err: domain.ErrEmptyOperationData}
		}
		return data, nil

	case domain.OperationMoveZone:
		var zone string
		for _, f := range fields {
			if f.Value == "" {
				continue
			}
			if f.Key != "" && f.Key != domain.ZoneDataKey {
				return nil, &domain.ValidationError{Field: f.Key, Err: domain.ErrEmptyOperationData}
			}
			if zone != "" {
				return nil, &domain.ValidationError{Field: domain.ZoneDataKey, Err: domain.ErrEmptyOperationData}
			}
			zone = f.Value
		}
		if zone == "" {
			return nil, &domain.ValidationError{Field: domain.ZoneDataKey, Err: domain.ErrEmptyOperationData}
		}
		return map[string]any{domain.ZoneDataKey: zone}, nil

	case domain.OperationDelete:
		return map[string]any{}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownOperation, kind)
}

// BulkPrompt returns the confirmation shown before dispatching op.
func BulkPrompt(op domain.BulkOperation) driving.Prompt {
	if op.Operation.IsDestructive() {
		return driving.Prompt{
			Message:     fmt.Sprintf("¿Eliminar %d items? Esta acción no se puede deshacer.", len(op.ItemIDs)),
			Destructive: true,
		}
	}
	return driving.Prompt{
		Message: fmt.Sprintf("¿Ejecutar operación %q en %d items?", op.Operation.String(), len(op.ItemIDs)),
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
