// Package domain defines the core business entities for Curio.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: A collection item (metadata + indexed document text)
//   - Metadata: Core schema fields plus free-form custom fields
//   - MetadataUpdate: A partial or full metadata replacement command
//   - BulkOperation / BulkResult: Multi-item commands and their outcomes
//
// It also holds the metadata reconciliation rules (field classification,
// add/remove/update proposals) because they are pure functions over these
// types and must run before anything reaches the network.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
