package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Relevant(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	w := NewWatcher(store, nil)
	other := filepath.Join(filepath.Dir(store.Path()), "other.toml")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: store.Path(), Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: store.Path(), Op: fsnotify.Create}, true},
		{"rename", fsnotify.Event{Name: store.Path(), Op: fsnotify.Rename}, true},
		{"chmod", fsnotify.Event{Name: store.Path(), Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: store.Path(), Op: fsnotify.Remove}, false},
		{"other file", fsnotify.Event{Name: other, Op: fsnotify.Write}, false},
		{"temp file", fsnotify.Event{Name: store.Path() + ".tmp", Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	changed := make(chan string, 4)
	w := NewWatcher(store, func(s *ConfigStore) {
		changed <- s.GetString("api.base_url")
	})
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	content := "[api]\nbase_url = \"https://new.example\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	select {
	case got := <-changed:
		assert.Equal(t, "https://new.example", got)
	case <-time.After(5 * time.Second):
		t.Fatal("config change not observed")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_InvalidFileKeepsPreviousValues(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("api.base_url", "https://old.example"))
	require.NoError(t, store.Save())

	called := false
	w := NewWatcher(store, func(*ConfigStore) { called = true })

	require.NoError(t, os.WriteFile(store.Path(), []byte("broken = ["), 0600))
	w.reload()

	assert.False(t, called)
	assert.Equal(t, "https://old.example", store.GetString("api.base_url"))
}
