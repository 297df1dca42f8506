package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

func findByTitle(t *testing.T, env *testEnv, title string) *domain.Record {
	t.Helper()
	items, err := env.store.GetCollection(context.Background(), "mac_info")
	require.NoError(t, err)
	for i := range items {
		if items[i].Title() == title {
			return &items[i]
		}
	}
	t.Fatalf("no record titled %q", title)
	return nil
}

func TestItemCreateObra(t *testing.T) {
	env := setupTestServices(t)

	out, err := run(t, "", "item", "create", "obra",
		"--titulo", "Huaco retrato", "--artista", "Moche", "--zona", "Sala 2",
		"--descripcion", "Cerámica escultórica", "--anio", "500",
		"--extra", "procedencia=donación", "--extra", " vitrina = 4 ")

	require.NoError(t, err)
	assert.Contains(t, out, `Obra "Huaco retrato" creada.`)
	assert.Equal(t, 1, env.store.Calls("CreateArtwork"))

	record := findByTitle(t, env, "Huaco retrato")
	assert.Equal(t, domain.TypeObra, record.Metadata.Type())
	assert.Equal(t, "500", record.Metadata.String(domain.FieldAnio))
	assert.Equal(t, "donación", record.Metadata.String("procedencia"))
	assert.Equal(t, "4", record.Metadata.String("vitrina"))
	assert.Equal(t, "Cerámica escultórica", record.Document)
}

func TestItemCreateObra_MissingRequired(t *testing.T) {
	env := setupTestServices(t)

	_, err := run(t, "", "item", "create", "obra", "--titulo", "Sin artista")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRequiredField)
	assert.Contains(t, err.Error(), `"artista"`)
	assert.Zero(t, env.store.Calls("CreateArtwork"))
}

func TestItemCreateObra_BadExtra(t *testing.T) {
	env := setupTestServices(t)

	_, err := run(t, "", "item", "create", "obra",
		"--titulo", "X", "--artista", "Y", "--zona", "Z", "--descripcion", "D", "--extra", "sin-valor")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, env.store.Calls("CreateArtwork"))
}

func TestItemCreateZona(t *testing.T) {
	env := setupTestServices(t)

	out, err := run(t, "", "item", "create", "zona",
		"--nombre", "Zona IAC", "--descripcion", "Arte moderno", "--periodo", "1955-1972")

	require.NoError(t, err)
	assert.Contains(t, out, `Zona "Zona IAC" creada.`)

	record := findByTitle(t, env, "Zona IAC")
	assert.Equal(t, domain.TypeZona, record.Metadata.Type())
	assert.Equal(t, "1955-1972", record.Metadata.String("periodo"))
}

func TestItemCreate_FlagsDoNotLeak(t *testing.T) {
	setupTestServices(t)

	_, err := run(t, "", "item", "create", "zona", "--nombre", "Primera", "--descripcion", "x")
	require.NoError(t, err)

	_, err = run(t, "", "item", "create", "zona", "--descripcion", "y")
	assert.ErrorIs(t, err, domain.ErrRequiredField)
}
