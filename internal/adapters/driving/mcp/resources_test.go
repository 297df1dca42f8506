package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

func TestExtractCollection(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid items URI",
			uri:      "curio://collections/mac_info/items",
			expected: "mac_info",
		},
		{
			name:     "invalid prefix",
			uri:      "file://collections/mac_info/items",
			expected: "",
		},
		{
			name:     "missing items suffix",
			uri:      "curio://collections/mac_info",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "curio://collections/a/b/items",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractCollection(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleCollectionsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns collections", func(t *testing.T) {
		server, err := NewServer(&Ports{Collections: &mockCollectionService{names: []string{"mac_info", "mac_images"}}})
		require.NoError(t, err)

		result, err := server.handleCollectionsResource(ctx, makeReadResourceRequest("curio://collections"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "mac_images")
	})

	t.Run("nil list renders empty array", func(t *testing.T) {
		server, err := NewServer(&Ports{Collections: &mockCollectionService{}})
		require.NoError(t, err)

		result, err := server.handleCollectionsResource(ctx, makeReadResourceRequest("curio://collections"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Collections: &mockCollectionService{err: errors.New("backend down")}})
		require.NoError(t, err)

		_, err = server.handleCollectionsResource(ctx, makeReadResourceRequest("curio://collections"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing collections")
	})
}

func TestServer_handleItemsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Collections: &mockCollectionService{}})
		require.NoError(t, err)

		_, err = server.handleItemsResource(ctx, makeReadResourceRequest("curio://invalid"))

		require.Error(t, err)
	})

	t.Run("returns item summaries", func(t *testing.T) {
		svc := &mockCollectionService{records: []domain.Record{
			{ID: "1", Metadata: domain.NewMetadata(map[string]any{"titulo": "Retablo", "zona": "Sala 2"})},
		}}
		server, err := NewServer(&Ports{Collections: svc})
		require.NoError(t, err)

		result, err := server.handleItemsResource(ctx, makeReadResourceRequest("curio://collections/mac_info/items"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "Retablo")
		assert.Contains(t, result.Contents[0].Text, "Sala 2")
	})
}
