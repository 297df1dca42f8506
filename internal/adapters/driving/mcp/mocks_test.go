package mcp

import (
	"context"
	"encoding/json"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

// mockCollectionService is a mock implementation of driving.CollectionService.
type mockCollectionService struct {
	names     []string
	records   []domain.Record
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockCollectionService) List(_ context.Context) ([]string, error) {
	return m.names, m.err
}

func (m *mockCollectionService) Items(_ context.Context, _ string) ([]domain.Record, error) {
	return m.records, m.err
}

func (m *mockCollectionService) Stats(_ context.Context, _ string) (domain.CollectionStats, error) {
	return domain.CollectionStats{}, m.err
}

func (m *mockCollectionService) Search(
	_ context.Context, query string, opts domain.SearchOptions,
) ([]domain.Record, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.records, m.err
}

func (m *mockCollectionService) Health(_ context.Context) error {
	return m.err
}

func (m *mockCollectionService) Duplicate(context.Context, string, string) error { return m.err }

func (m *mockCollectionService) Delete(context.Context, string, driving.Confirmer) error { return m.err }

func (m *mockCollectionService) Export(context.Context, string) (json.RawMessage, error) { return nil, m.err }

func (m *mockCollectionService) CreateArtwork(context.Context, domain.ArtworkDraft) error { return m.err }

func (m *mockCollectionService) CreateZone(context.Context, domain.ZoneDraft) error { return m.err }

// mockMetadataService is a mock implementation of driving.MetadataService.
type mockMetadataService struct {
	record    *domain.Record
	err       error
	lastField string
	lastValue any
	confirmed bool
}

func (m *mockMetadataService) Get(_ context.Context, _, _ string) (*domain.Record, error) {
	return m.record, m.err
}

func (m *mockMetadataService) UpdateField(_ context.Context, _, _, name string, value any) error {
	m.lastField, m.lastValue = name, value
	return m.err
}

func (m *mockMetadataService) AddField(_ context.Context, _, _, name, value string) error {
	m.lastField, m.lastValue = name, value
	return m.err
}

func (m *mockMetadataService) RemoveField(
	ctx context.Context, _, _, name string, confirm driving.Confirmer,
) error {
	if m.err != nil {
		return m.err
	}
	ok, err := confirm.Confirm(ctx, driving.Prompt{Message: "remove " + name})
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAborted
	}
	m.confirmed = true
	m.lastField = name
	return nil
}

func (m *mockMetadataService) ReplaceAll(_ context.Context, _, _ string, _ map[string]any) error {
	return m.err
}

func (m *mockMetadataService) UpdateDocument(_ context.Context, _, _, _ string, _ bool) error {
	return m.err
}

func (m *mockMetadataService) DeleteRecord(_ context.Context, _, _ string, _ driving.Confirmer) error {
	return m.err
}
