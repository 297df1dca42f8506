package driven

import (
	"context"
	"encoding/json"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

// RecordStore is the remote backend holding collections and their records.
// Every call is a single request; failures of the request itself are
// returned as *domain.TransportError.
type RecordStore interface {
	// ListCollections returns the collection names.
	ListCollections(ctx context.Context) ([]string, error)

	// GetCollection returns every record in a collection.
	GetCollection(ctx context.Context, collection string) ([]domain.Record, error)

	// GetCollectionStats returns the backend's summary for a collection.
	GetCollectionStats(ctx context.Context, collection string) (domain.CollectionStats, error)

	// DuplicateCollection copies a collection under a new name.
	DuplicateCollection(ctx context.Context, source, target string) error

	// DeleteCollection removes a collection and every record in it.
	DeleteCollection(ctx context.Context, collection string) error

	// ExportCollection returns the backend's JSON export of a collection.
	ExportCollection(ctx context.Context, collection string) (json.RawMessage, error)

	// CreateArtwork adds a new obra.
	CreateArtwork(ctx context.Context, draft domain.ArtworkDraft) error

	// CreateZone adds a new zona.
	CreateZone(ctx context.Context, draft domain.ZoneDraft) error

	// GetRecord retrieves a single record.
	GetRecord(ctx context.Context, collection, id string) (*domain.Record, error)

	// UpdateMetadata merges or replaces a record's metadata.
	UpdateMetadata(ctx context.Context, collection, id string, update domain.MetadataUpdate) error

	// AddField adds a single new field to a record.
	AddField(ctx context.Context, collection, id, name, value string) error

	// RemoveField deletes a single field from a record.
	RemoveField(ctx context.Context, collection, id, name string) error

	// UpdateDocument replaces a record's indexed text.
	UpdateDocument(ctx context.Context, collection, id string, update domain.DocumentUpdate) error

	// DeleteRecord removes a record.
	DeleteRecord(ctx context.Context, collection, id string) error

	// BulkOperation applies one operation to many records in a single request.
	// Per-item failures are reported in the result, not as an error.
	BulkOperation(ctx context.Context, collection string, op domain.BulkOperation) (*domain.BulkResult, error)

	// Search performs a semantic search.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Record, error)

	// Health checks the backend is reachable.
	Health(ctx context.Context) error
}
