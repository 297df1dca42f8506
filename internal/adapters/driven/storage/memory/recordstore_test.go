package memory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

func seededStore() *RecordStore {
	store := NewRecordStore()
	store.Put("mac_info", domain.Record{
		ID:       "a",
		Metadata: domain.NewMetadata(map[string]any{"titulo": "Noche", "zona": "Sala 1", "tipo": "obra"}),
		Document: "Óleo sobre tela",
	})
	store.Put("mac_info", domain.Record{
		ID:       "b",
		Metadata: domain.NewMetadata(map[string]any{"titulo": "Día", "procedencia": "Donación", "tipo": "obra"}),
		Document: "Acuarela",
	})
	return store
}

func TestRecordStore_GetRecord(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	rec, err := store.GetRecord(ctx, "mac_info", "a")
	require.NoError(t, err)
	assert.Equal(t, "Noche", rec.Title())

	_, err = store.GetRecord(ctx, "mac_info", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, store.Calls("GetRecord"))
}

func TestRecordStore_GetRecord_ReturnsCopy(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	rec, err := store.GetRecord(ctx, "mac_info", "a")
	require.NoError(t, err)
	rec.Metadata.Set("titulo", "changed")

	again, err := store.GetRecord(ctx, "mac_info", "a")
	require.NoError(t, err)
	assert.Equal(t, "Noche", again.Title())
}

func TestRecordStore_UpdateMetadata_Merge(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	require.NoError(t, store.UpdateMetadata(ctx, "mac_info", "a", domain.ProposeUpdate("zona", "Sala 2")))

	rec, _ := store.GetRecord(ctx, "mac_info", "a")
	assert.Equal(t, "Sala 2", rec.Metadata.Zone())
	assert.Equal(t, "Noche", rec.Title())
}

func TestRecordStore_UpdateMetadata_ReplaceAll(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	require.NoError(t, store.UpdateMetadata(ctx, "mac_info", "a", domain.ProposeReplaceAll(map[string]any{"titulo": "Nueva"})))

	rec, _ := store.GetRecord(ctx, "mac_info", "a")
	assert.Equal(t, []string{"titulo"}, rec.Metadata.Keys())
}

func TestRecordStore_AddAndRemoveField(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	require.NoError(t, store.AddField(ctx, "mac_info", "a", "nota", "x"))
	assert.ErrorIs(t, store.AddField(ctx, "mac_info", "a", "nota", "y"), domain.ErrDuplicateField)

	require.NoError(t, store.RemoveField(ctx, "mac_info", "a", "nota"))
	rec, _ := store.GetRecord(ctx, "mac_info", "a")
	assert.False(t, rec.Metadata.Has("nota"))
}

func TestRecordStore_UpdateDocumentAndDelete(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	require.NoError(t, store.UpdateDocument(ctx, "mac_info", "a", domain.DocumentUpdate{NewDocument: "nuevo"}))
	rec, _ := store.GetRecord(ctx, "mac_info", "a")
	assert.Equal(t, "nuevo", rec.Document)

	require.NoError(t, store.DeleteRecord(ctx, "mac_info", "a"))
	assert.ErrorIs(t, store.DeleteRecord(ctx, "mac_info", "a"), domain.ErrNotFound)
}

func TestRecordStore_BulkOperation_PartialFailure(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	result, err := store.BulkOperation(ctx, "mac_info", domain.BulkOperation{
		ItemIDs:       []string{"a", "b", "c"},
		Operation:     domain.OperationDelete,
		OperationData: map[string]any{},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, []string{"c: not found"}, result.Errors)
	assert.Len(t, store.BulkOperations(), 1)
}

func TestRecordStore_BulkOperation_MoveZone(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	result, err := store.BulkOperation(ctx, "mac_info", domain.BulkOperation{
		ItemIDs:       []string{"a", "b"},
		Operation:     domain.OperationMoveZone,
		OperationData: map[string]any{"new_zone": "Sala 2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)

	items, err := store.GetCollection(ctx, "mac_info")
	require.NoError(t, err)
	for _, item := range items {
		assert.Equal(t, "Sala 2", item.Metadata.Zone())
	}
}

func TestRecordStore_BulkOperation_Override(t *testing.T) {
	store := seededStore()
	store.BulkResultOverride = &domain.BulkResult{SuccessCount: 7}

	result, err := store.BulkOperation(context.Background(), "mac_info", domain.BulkOperation{
		ItemIDs:       []string{"a"},
		Operation:     domain.OperationUpdateMetadata,
		OperationData: map[string]any{"nota": "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, result.SuccessCount)
}

func TestRecordStore_InjectedError(t *testing.T) {
	store := seededStore()
	store.Err = errors.New("backend down")

	_, err := store.ListCollections(context.Background())
	assert.EqualError(t, err, "backend down")
	assert.EqualError(t, store.Health(context.Background()), "backend down")
	assert.Equal(t, 2, store.TotalCalls())
}

func TestRecordStore_Search(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	results, err := store.Search(ctx, "acuarela", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].ID)

	results, err = store.Search(ctx, "o", domain.SearchOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = store.Search(ctx, "noche", domain.SearchOptions{Type: "zona"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecordStore_Stats(t *testing.T) {
	store := seededStore()

	stats, err := store.GetCollectionStats(context.Background(), "mac_info")
	require.NoError(t, err)
	assert.Equal(t, 2, stats["total_items"])
	assert.Equal(t, 4, stats["total_fields"])

	_, err = store.GetCollectionStats(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordStore_DuplicateCollection(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	require.NoError(t, store.DuplicateCollection(ctx, "mac_info", "mac_copia"))

	copied, err := store.GetCollection(ctx, "mac_copia")
	require.NoError(t, err)
	original, err := store.GetCollection(ctx, "mac_info")
	require.NoError(t, err)
	assert.Equal(t, original, copied)

	assert.ErrorIs(t, store.DuplicateCollection(ctx, "mac_info", "mac_copia"), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.DuplicateCollection(ctx, "missing", "x"), domain.ErrNotFound)
}

func TestRecordStore_DeleteCollection(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	require.NoError(t, store.DeleteCollection(ctx, "mac_info"))

	_, err := store.GetCollection(ctx, "mac_info")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.DeleteCollection(ctx, "mac_info"), domain.ErrNotFound)
}

func TestRecordStore_ExportCollection(t *testing.T) {
	store := seededStore()

	data, err := store.ExportCollection(context.Background(), "mac_info")
	require.NoError(t, err)

	var export struct {
		Name  string          `json:"collection_name"`
		Items []domain.Record `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &export))
	assert.Equal(t, "mac_info", export.Name)
	require.NotEmpty(t, export.Items)
	assert.Equal(t, "a", export.Items[0].ID)
}

func TestRecordStore_CreateContent(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	require.NoError(t, store.CreateArtwork(ctx, domain.ArtworkDraft{
		Title: "Venus", Artist: "Anónimo", Zone: "Sala 1", Description: "Mármol",
	}))
	require.NoError(t, store.CreateZone(ctx, domain.ZoneDraft{Name: "Zona IAC", Description: "Arte moderno"}))

	items, err := store.GetCollection(ctx, domain.DefaultCollection)
	require.NoError(t, err)
	require.Len(t, items, 2)

	types := []string{items[0].Metadata.Type(), items[1].Metadata.Type()}
	assert.ElementsMatch(t, []string{domain.TypeObra, domain.TypeZona}, types)
	for _, r := range items {
		assert.NotEmpty(t, r.ID)
	}
}
