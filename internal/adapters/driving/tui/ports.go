// Package tui provides an interactive terminal user interface for curio.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/curio-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Collections browses collections and searches records.
	Collections driving.CollectionService

	// Metadata edits single items.
	Metadata driving.MetadataService

	// Bulk applies one operation to many items.
	Bulk driving.BulkDispatcher
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	collections driving.CollectionService,
	metadata driving.MetadataService,
	bulk driving.BulkDispatcher,
) *Ports {
	return &Ports{
		Collections: collections,
		Metadata:    metadata,
		Bulk:        bulk,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Collections == nil {
		return ErrMissingCollectionService
	}
	if p.Metadata == nil {
		return ErrMissingMetadataService
	}
	if p.Bulk == nil {
		return ErrMissingBulkDispatcher
	}
	return nil
}
