// Package mcp provides an MCP (Model Context Protocol) server adapter for Curio.
// It lets AI assistants browse collections, edit item metadata and run bulk
// operations against the curio backend.
package mcp

import "errors"

// ErrMissingCollectionService is returned when the collection service is not provided.
var ErrMissingCollectionService = errors.New("mcp: collection service is required")

// errNotConfigured is returned by tools whose service was not wired.
var errNotConfigured = errors.New("mcp: service not configured")
