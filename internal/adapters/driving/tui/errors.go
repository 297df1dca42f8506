package tui

import "errors"

// ErrMissingCollectionService is returned when the collection service is not provided.
var ErrMissingCollectionService = errors.New("tui: collection service is required")

// ErrMissingMetadataService is returned when the metadata service is not provided.
var ErrMissingMetadataService = errors.New("tui: metadata service is required")

// ErrMissingBulkDispatcher is returned when the bulk dispatcher is not provided.
var ErrMissingBulkDispatcher = errors.New("tui: bulk dispatcher is required")
