package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driven"
)

// bulkHistoryStore implements driven.BulkHistoryStore.
type bulkHistoryStore struct {
	store *Store
}

var _ driven.BulkHistoryStore = (*bulkHistoryStore)(nil)

const bulkRunColumns = `id, collection, operation, item_ids, operation_data, phase,
	success_count, error_count, item_errors, error, started_at, finished_at`

// Save stores or updates a run.
func (s *bulkHistoryStore) Save(ctx context.Context, run domain.BulkRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}

	itemIDs, err := json.Marshal(run.ItemIDs)
	if err != nil {
		return fmt.Errorf("marshalling item ids: %w", err)
	}
	data := run.OperationData
	if data == nil {
		data = map[string]any{}
	}
	opData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshalling operation data: %w", err)
	}

	var successCount, errorCount sql.NullInt64
	var itemErrors sql.NullString
	if run.Result != nil {
		successCount = sql.NullInt64{Int64: int64(run.Result.SuccessCount), Valid: true}
		errorCount = sql.NullInt64{Int64: int64(run.Result.ErrorCount), Valid: true}
		errs, err := json.Marshal(run.Result.Errors)
		if err != nil {
			return fmt.Errorf("marshalling item errors: %w", err)
		}
		itemErrors = sql.NullString{String: string(errs), Valid: true}
	}

	var finishedAt sql.NullTime
	if !run.FinishedAt.IsZero() {
		finishedAt = sql.NullTime{Time: run.FinishedAt.UTC(), Valid: true}
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO bulk_runs (`+bulkRunColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			phase = excluded.phase,
			success_count = excluded.success_count,
			error_count = excluded.error_count,
			item_errors = excluded.item_errors,
			error = excluded.error,
			finished_at = excluded.finished_at
	`, run.ID, run.Collection, string(run.Operation), string(itemIDs), string(opData), string(run.Phase),
		successCount, errorCount, itemErrors, nullString(run.Error), run.StartedAt.UTC(), finishedAt)
	if err != nil {
		return fmt.Errorf("saving bulk run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *bulkHistoryStore) Get(ctx context.Context, id string) (*domain.BulkRun, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+bulkRunColumns+` FROM bulk_runs WHERE id = ?`, id)
	run, err := scanBulkRun(row)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns the most recent runs, newest first.
func (s *bulkHistoryStore) List(ctx context.Context, limit int) ([]domain.BulkRun, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+bulkRunColumns+` FROM bulk_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying bulk runs: %w", err)
	}
	defer rows.Close()

	runs := []domain.BulkRun{}
	for rows.Next() {
		run, err := scanBulkRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bulk runs: %w", err)
	}
	return runs, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBulkRun(row rowScanner) (*domain.BulkRun, error) {
	var (
		run                      domain.BulkRun
		operation, phase         string
		itemIDs, opData          string
		successCount, errorCount sql.NullInt64
		itemErrors, runErr       sql.NullString
		finishedAt               sql.NullTime
	)

	err := row.Scan(&run.ID, &run.Collection, &operation, &itemIDs, &opData, &phase,
		&successCount, &errorCount, &itemErrors, &runErr, &run.StartedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning bulk run: %w", err)
	}

	run.Operation = domain.OperationKind(operation)
	run.Phase = domain.BulkPhase(phase)
	run.Error = runErr.String
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}

	if err := json.Unmarshal([]byte(itemIDs), &run.ItemIDs); err != nil {
		return nil, fmt.Errorf("unmarshalling item ids: %w", err)
	}
	if err := json.Unmarshal([]byte(opData), &run.OperationData); err != nil {
		return nil, fmt.Errorf("unmarshalling operation data: %w", err)
	}

	if successCount.Valid {
		run.Result = &domain.BulkResult{
			SuccessCount: int(successCount.Int64),
			ErrorCount:   int(errorCount.Int64),
		}
		if itemErrors.Valid && itemErrors.String != jsonNull {
			if err := json.Unmarshal([]byte(itemErrors.String), &run.Result.Errors); err != nil {
				return nil, fmt.Errorf("unmarshalling item errors: %w", err)
			}
		}
	}

	return &run, nil
}

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// nullString converts an empty string to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
