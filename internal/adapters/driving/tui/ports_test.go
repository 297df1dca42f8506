package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curio-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/curio-cli/internal/core/services"
)

func TestNewPorts(t *testing.T) {
	store := memory.NewRecordStore()
	collections := services.NewCollectionService(store)
	metadata := services.NewMetadataService(store)
	dispatcher := services.NewBulkDispatcher(store, nil, nil, services.BulkConfig{})

	ports := NewPorts(collections, metadata, dispatcher)

	require.NotNil(t, ports)
	assert.Equal(t, collections, ports.Collections)
	assert.Equal(t, metadata, ports.Metadata)
	assert.Equal(t, dispatcher, ports.Bulk)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	store := memory.NewRecordStore()
	collections := services.NewCollectionService(store)
	metadata := services.NewMetadataService(store)
	dispatcher := services.NewBulkDispatcher(store, nil, nil, services.BulkConfig{})

	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"missing collections", &Ports{Metadata: metadata, Bulk: dispatcher}, ErrMissingCollectionService},
		{"missing metadata", &Ports{Collections: collections, Bulk: dispatcher}, ErrMissingMetadataService},
		{"missing bulk", &Ports{Collections: collections, Metadata: metadata}, ErrMissingBulkDispatcher},
		{"empty", &Ports{}, ErrMissingCollectionService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ports.Validate(), tt.wantErr)
		})
	}
}
