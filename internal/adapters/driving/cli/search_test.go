package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

func TestSearch(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "", "search", "venus")

	require.NoError(t, err)
	assert.Contains(t, out, "Results:")
	assert.Contains(t, out, "[1] Venus")
	assert.Contains(t, out, "a · escultura")
	assert.NotContains(t, out, "Retrato")
}

func TestSearch_NoResults(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "", "search", "dinosaurio")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearch_TypeFilterAndLimit(t *testing.T) {
	env := setupTestServices(t)
	env.store.Put("mac_info", domain.Record{ID: "d", Metadata: domain.NewMetadata(map[string]any{"titulo": "Paisaje", "tipo": "pintura"})})

	out, err := run(t, "", "search", "a", "--tipo", "pintura", "--limit", "1", "--json")

	require.NoError(t, err)
	var results []domain.Record
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "pintura", results[0].Metadata.Type())
}

func TestSearch_OtherCollection(t *testing.T) {
	env := setupTestServices(t)
	env.store.Put("mac_images", domain.Record{ID: "img1", Document: "venus fotografiada"})

	out, err := run(t, "", "search", "venus", "-c", "mac_images")

	require.NoError(t, err)
	assert.Contains(t, out, "img1")
	assert.NotContains(t, out, "Venus de mármol")
}

func TestHealth(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "", "health")

	require.NoError(t, err)
	assert.Contains(t, out, "Backend OK")
}

func TestHealth_Unreachable(t *testing.T) {
	env := setupTestServices(t)
	env.store.Err = errors.New("dial tcp: connection refused")

	_, err := run(t, "", "health")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unreachable")
}
