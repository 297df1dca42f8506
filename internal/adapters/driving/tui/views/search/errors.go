package search

import "errors"

// ErrNoCollectionService is reported when a search runs without a collection service.
var ErrNoCollectionService = errors.New("collection service not available")
