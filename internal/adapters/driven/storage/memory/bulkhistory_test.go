package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

func TestBulkHistoryStore_SaveAndGet(t *testing.T) {
	store := NewBulkHistoryStore()
	ctx := context.Background()

	run := domain.BulkRun{ID: "run-1", Collection: "mac_info", Operation: domain.OperationDelete}
	require.NoError(t, store.Save(ctx, run))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run, *got)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBulkHistoryStore_List_NewestFirst(t *testing.T) {
	store := NewBulkHistoryStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.Save(ctx, domain.BulkRun{ID: id, StartedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	runs, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "old", runs[2].ID)

	runs, err = store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
