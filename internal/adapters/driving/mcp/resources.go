package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Curio resources.
	uriScheme = "curio://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "collections",
		Name:        "collections",
		Description: "Collections held by the backend",
		MIMEType:    "application/json",
	}, s.handleCollectionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "collections/{collection}/items",
		Name:        "collection-items",
		Description: "Items of a specific collection",
		MIMEType:    "application/json",
	}, s.handleItemsResource)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleCollectionsResource returns the collection names.
func (s *Server) handleCollectionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	names, err := s.ports.Collections.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return jsonResult(req.Params.URI, names)
}

// handleItemsResource returns the items of one collection.
func (s *Server) handleItemsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	collection := extractCollection(req.Params.URI)
	if collection == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.Collections.Items(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return jsonResult(req.Params.URI, summarise(records))
}

// extractCollection extracts the collection from a URI like curio://collections/{collection}/items.
func extractCollection(uri string) string {
	const prefix = uriScheme + "collections/"
	const suffix = "/items"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	name := strings.TrimSuffix(uri, suffix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}
