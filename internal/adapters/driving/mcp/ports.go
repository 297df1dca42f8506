package mcp

import (
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Collections browses collections and searches records.
	Collections driving.CollectionService

	// Metadata edits single items.
	Metadata driving.MetadataService

	// Bulk applies one operation to many items.
	Bulk driving.BulkDispatcher
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Collections == nil {
		return ErrMissingCollectionService
	}
	// Metadata and Bulk are optional; their tools report errNotConfigured.
	return nil
}
