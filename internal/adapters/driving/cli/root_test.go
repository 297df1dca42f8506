package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIURLOverride_Applied(t *testing.T) {
	setupTestServices(t)
	var got string
	SetAPIURLOverride(func(u string) error {
		got = u
		return nil
	})

	_, err := run(t, "", "--api-url", "http://museo.local:8000", "health")

	require.NoError(t, err)
	assert.Equal(t, "http://museo.local:8000", got)
}

func TestAPIURLOverride_NotCalledWithoutFlag(t *testing.T) {
	setupTestServices(t)
	called := false
	SetAPIURLOverride(func(string) error {
		called = true
		return nil
	})

	_, err := run(t, "", "health")

	require.NoError(t, err)
	assert.False(t, called)
}

func TestAPIURLOverride_Rejected(t *testing.T) {
	setupTestServices(t)
	SetAPIURLOverride(func(string) error { return errors.New("must use http or https") })

	_, err := run(t, "", "--api-url", "ftp://museo", "health")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --api-url")
}

func TestSetServices(t *testing.T) {
	setupTestServices(t)
	assert.NotNil(t, collectionService)
	assert.NotNil(t, metadataService)
	assert.NotNil(t, bulkDispatcher)
	assert.NotNil(t, settingsService)

	SetServices(Services{})

	assert.Nil(t, collectionService)
	assert.Nil(t, bulkDispatcher)
}
