package driving

import (
	"context"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

// MetadataService edits single records.
// Validation failures are returned before anything is sent to the backend.
type MetadataService interface {
	// Get retrieves a record.
	Get(ctx context.Context, collection, id string) (*domain.Record, error)

	// UpdateField sets one field, creating or overwriting it.
	UpdateField(ctx context.Context, collection, id, name string, value any) error

	// AddField adds a field that does not yet exist on the record.
	AddField(ctx context.Context, collection, id, name, value string) error

	// RemoveField removes a custom field after confirmation.
	// Core fields are rejected before the prompt is shown.
	RemoveField(ctx context.Context, collection, id, name string, confirm Confirmer) error

	// ReplaceAll replaces the record's complete field set.
	ReplaceAll(ctx context.Context, collection, id string, fields map[string]any) error

	// UpdateDocument replaces the record's indexed text.
	UpdateDocument(ctx context.Context, collection, id, text string, regenerate bool) error

	// DeleteRecord removes the record after confirmation.
	DeleteRecord(ctx context.Context, collection, id string, confirm Confirmer) error
}
