package lock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
)

func TestFileGuard_TryLock(t *testing.T) {
	guard, err := NewFileGuard(t.TempDir())
	require.NoError(t, err)

	release, err := guard.TryLock("mac_images")
	require.NoError(t, err)
	require.NotNil(t, release)

	_, err = guard.TryLock("mac_images")
	assert.ErrorIs(t, err, domain.ErrOperationInProgress)

	release()

	again, err := guard.TryLock("mac_images")
	require.NoError(t, err)
	again()
}

func TestFileGuard_CollectionsAreIndependent(t *testing.T) {
	guard, err := NewFileGuard(t.TempDir())
	require.NoError(t, err)

	releaseA, err := guard.TryLock("mac_images")
	require.NoError(t, err)
	defer releaseA()

	releaseB, err := guard.TryLock("mac_info")
	require.NoError(t, err)
	releaseB()
}

func TestFileGuard_SharedDirectory(t *testing.T) {
	dir := t.TempDir()
	first, err := NewFileGuard(dir)
	require.NoError(t, err)
	second, err := NewFileGuard(dir)
	require.NoError(t, err)

	release, err := first.TryLock("mac_images")
	require.NoError(t, err)
	defer release()

	_, err = second.TryLock("mac_images")
	assert.ErrorIs(t, err, domain.ErrOperationInProgress)
}

func TestFileGuard_LockPath(t *testing.T) {
	dir := t.TempDir()
	guard, err := NewFileGuard(dir)
	require.NoError(t, err)

	tests := []struct {
		collection string
		want       string
	}{
		{"mac_images", "mac_images.lock"},
		{"../etc/passwd", "___etc_passwd.lock"},
		{"colección", "colecci_n.lock"},
		{"", "_.lock"},
	}

	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			assert.Equal(t, filepath.Join(dir, tt.want), guard.lockPath(tt.collection))
		})
	}
}
