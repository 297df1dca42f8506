package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsShow_Defaults(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "[API]")
	assert.Contains(t, out, "Default: mac_info")
	assert.Contains(t, out, "Consistency check: yes")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsSet(t *testing.T) {
	env := setupTestServices(t)

	out, err := run(t, "", "settings", "set", "collection.default", "mac_images")
	require.NoError(t, err)
	assert.Contains(t, out, "collection.default = mac_images")
	assert.Equal(t, "mac_images", env.config.GetString("collection.default"))

	out, err = run(t, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Default: mac_images")
}

func TestSettingsSet_Bool(t *testing.T) {
	env := setupTestServices(t)

	_, err := run(t, "", "settings", "set", "bulk.consistency_check", "false")

	require.NoError(t, err)
	assert.False(t, env.config.GetBool("bulk.consistency_check"))
}

func TestSettingsSet_UnknownKey(t *testing.T) {
	setupTestServices(t)

	_, err := run(t, "", "settings", "set", "colour", "blue")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown setting "colour"`)
	assert.Contains(t, err.Error(), "api.base_url")
}

func TestSettingsSet_InvalidValue(t *testing.T) {
	setupTestServices(t)

	_, err := run(t, "", "settings", "set", "api.burst", "many")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set api.burst")
}

func TestSettingsShow_InvalidBaseURL(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.config.Set("api.base_url", "not a url"))

	out, err := run(t, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning:")
	assert.NotContains(t, out, "Configuration is valid.")
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}
