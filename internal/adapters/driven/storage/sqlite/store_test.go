package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

// ==================== Store Creation ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "history.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path")

	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
	info, err := os.Stat(nestedDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewStore_MigrationsRecordedOnce(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	v, err := store.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	require.NoError(t, store.Close())

	// Reopening must not re-run migrations.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

// ==================== Bulk History ====================

func testRun(id string, started time.Time) domain.BulkRun {
	return domain.BulkRun{
		ID:            id,
		Collection:    "mac_info",
		Operation:     domain.OperationMoveZone,
		ItemIDs:       []string{"a", "b", "c"},
		OperationData: map[string]any{"new_zone": "Sala 2"},
		Phase:         domain.BulkPhaseSucceeded,
		Result: &domain.BulkResult{
			SuccessCount: 2,
			ErrorCount:   1,
			Errors:       []string{"c: not found"},
		},
		StartedAt:  started,
		FinishedAt: started.Add(800 * time.Millisecond),
	}
}

func TestBulkHistoryStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	history := store.BulkHistoryStore()
	ctx := context.Background()
	started := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

	run := testRun("run-1", started)
	require.NoError(t, history.Save(ctx, run))

	got, err := history.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.Collection, got.Collection)
	assert.Equal(t, run.Operation, got.Operation)
	assert.Equal(t, run.ItemIDs, got.ItemIDs)
	assert.Equal(t, run.OperationData, got.OperationData)
	assert.Equal(t, run.Phase, got.Phase)
	assert.Equal(t, *run.Result, *got.Result)
	assert.True(t, run.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, 800*time.Millisecond, got.Duration())
}

func TestBulkHistoryStore_FailedRunHasNoResult(t *testing.T) {
	store := setupTestStore(t)
	history := store.BulkHistoryStore()
	ctx := context.Background()

	run := testRun("run-failed", time.Now().UTC())
	run.Phase = domain.BulkPhaseFailed
	run.Result = nil
	run.Error = "POST /admin/collections/mac_info/bulk-operation: status 502: Bad Gateway"
	require.NoError(t, history.Save(ctx, run))

	got, err := history.Get(ctx, "run-failed")
	require.NoError(t, err)
	assert.Nil(t, got.Result)
	assert.Equal(t, run.Error, got.Error)
}

func TestBulkHistoryStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.BulkHistoryStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBulkHistoryStore_Save_RequiresID(t *testing.T) {
	store := setupTestStore(t)

	err := store.BulkHistoryStore().Save(context.Background(), domain.BulkRun{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBulkHistoryStore_Save_Upsert(t *testing.T) {
	store := setupTestStore(t)
	history := store.BulkHistoryStore()
	ctx := context.Background()

	run := testRun("run-1", time.Now().UTC())
	run.Phase = domain.BulkPhaseExecuting
	run.Result = nil
	require.NoError(t, history.Save(ctx, run))

	run.Phase = domain.BulkPhaseSucceeded
	run.Result = &domain.BulkResult{SuccessCount: 3}
	require.NoError(t, history.Save(ctx, run))

	runs, err := history.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.BulkPhaseSucceeded, runs[0].Phase)
	assert.Equal(t, 3, runs[0].Result.SuccessCount)
	assert.Nil(t, runs[0].Result.Errors)
}

func TestBulkHistoryStore_List_NewestFirstWithLimit(t *testing.T) {
	store := setupTestStore(t)
	history := store.BulkHistoryStore()
	ctx := context.Background()
	base := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		require.NoError(t, history.Save(ctx, testRun(id, base.Add(time.Duration(i)*time.Hour))))
	}

	runs, err := history.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "third", runs[0].ID)
	assert.Equal(t, "first", runs[2].ID)

	runs, err = history.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "second", runs[1].ID)
}

func TestBulkHistoryStore_List_Empty(t *testing.T) {
	store := setupTestStore(t)

	runs, err := store.BulkHistoryStore().List(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}
