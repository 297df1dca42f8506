package driving

import (
	"context"
	"encoding/json"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

// CollectionService browses, copies, exports and deletes collections,
// creates content and searches records.
type CollectionService interface {
	// List returns the collection names.
	List(ctx context.Context) ([]string, error)

	// Items returns every record in a collection.
	Items(ctx context.Context, collection string) ([]domain.Record, error)

	// Stats returns the backend's summary for a collection.
	Stats(ctx context.Context, collection string) (domain.CollectionStats, error)

	// Duplicate copies source into a new collection named target.
	Duplicate(ctx context.Context, source, target string) error

	// Delete removes a whole collection after a destructive confirmation.
	// A declined confirmation returns domain.ErrAborted.
	Delete(ctx context.Context, collection string, confirm Confirmer) error

	// Export returns the backend's JSON export of a collection.
	Export(ctx context.Context, collection string) (json.RawMessage, error)

	// CreateArtwork validates and creates a new obra.
	CreateArtwork(ctx context.Context, draft domain.ArtworkDraft) error

	// CreateZone validates and creates a new zona.
	CreateZone(ctx context.Context, draft domain.ZoneDraft) error

	// Search performs a semantic search.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Record, error)

	// Health checks the backend is reachable.
	Health(ctx context.Context) error
}
