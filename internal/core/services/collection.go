package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/curio-cli/internal/logger"
)

// Ensure CollectionService implements the interface.
var _ driving.CollectionService = (*CollectionService)(nil)

// CollectionService browses and manages collections.
type CollectionService struct {
	store driven.RecordStore
}

// NewCollectionService creates a new collection service.
func NewCollectionService(store driven.RecordStore) *CollectionService {
	return &CollectionService{store: store}
}

// List returns the collection names, sorted.
func (s *CollectionService) List(ctx context.Context) ([]string, error) {
	names, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Items returns every record in a collection.
func (s *CollectionService) Items(ctx context.Context, collection string) ([]domain.Record, error) {
	if collection == "" {
		return nil, fmt.Errorf("%w: collection is required", domain.ErrInvalidInput)
	}
	items, err := s.store.GetCollection(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("get collection %q: %w", collection, err)
	}
	logger.Debug("Loaded %d items from %q", len(items), collection)
	return items, nil
}

// Stats returns the backend's summary for a collection.
func (s *CollectionService) Stats(ctx context.Context, collection string) (domain.CollectionStats, error) {
	if collection == "" {
		return nil, fmt.Errorf("%w: collection is required", domain.ErrInvalidInput)
	}
	return s.store.GetCollectionStats(ctx, collection)
}

// Duplicate copies source into target.
func (s *CollectionService) Duplicate(ctx context.Context, source, target string) error {
	source, target = strings.TrimSpace(source), strings.TrimSpace(target)
	if source == "" || target == "" {
		return fmt.Errorf("%w: source and target collections are required", domain.ErrInvalidInput)
	}
	if source == target {
		return fmt.Errorf("%w: target must differ from %q", domain.ErrInvalidInput, source)
	}
	if err := s.store.DuplicateCollection(ctx, source, target); err != nil {
		return fmt.Errorf("duplicate collection %q: %w", source, err)
	}
	logger.Info("Duplicated collection %q as %q", source, target)
	return nil
}

// Delete removes a collection after confirmation.
func (s *CollectionService) Delete(ctx context.Context, collection string, confirm driving.Confirmer) error {
	if collection == "" {
		return fmt.Errorf("%w: collection is required", domain.ErrInvalidInput)
	}

	if err := ask(ctx, confirm, driving.Prompt{
		Message:     fmt.Sprintf("¿ELIMINAR la colección %q y todos sus items? Esta acción NO se puede deshacer.", collection),
		Destructive: true,
	}); err != nil {
		return err
	}

	if err := s.store.DeleteCollection(ctx, collection); err != nil {
		return fmt.Errorf("delete collection %q: %w", collection, err)
	}
	logger.Info("Deleted collection %q", collection)
	return nil
}

// Export returns the export document for a collection.
func (s *CollectionService) Export(ctx context.Context, collection string) (json.RawMessage, error) {
	if collection == "" {
		return nil, fmt.Errorf("%w: collection is required", domain.ErrInvalidInput)
	}
	data, err := s.store.ExportCollection(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("export collection %q: %w", collection, err)
	}
	return data, nil
}

// CreateArtwork validates and creates an obra.
func (s *CollectionService) CreateArtwork(ctx context.Context, draft domain.ArtworkDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	if err := s.store.CreateArtwork(ctx, draft); err != nil {
		return fmt.Errorf("create obra: %w", err)
	}
	return nil
}

// CreateZone validates and creates a zona.
func (s *CollectionService) CreateZone(ctx context.Context, draft domain.ZoneDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	if err := s.store.CreateZone(ctx, draft); err != nil {
		return fmt.Errorf("create zona: %w", err)
	}
	return nil
}

// Search performs a semantic search. An empty query returns no results.
func (s *CollectionService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.Record, error) {
	logger.Section("Search")
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.Record{}, nil
	}

	opts = opts.Normalised()
	logger.Debug("Query: %q collection=%s limit=%d tipo=%q", query, opts.Collection, opts.Limit, opts.Type)

	results, err := s.store.Search(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return results, nil
}

// Health checks the backend is reachable.
func (s *CollectionService) Health(ctx context.Context) error {
	return s.store.Health(ctx)
}
