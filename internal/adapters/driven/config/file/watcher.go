package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/curio-cli/internal/logger"
)

// defaultDebounce coalesces the burst of events editors emit on save.
const defaultDebounce = 150 * time.Millisecond

// Watcher reloads a ConfigStore whenever its file changes and notifies a callback.
type Watcher struct {
	store    *ConfigStore
	onChange func(*ConfigStore)
	debounce time.Duration
}

// NewWatcher creates a watcher for store. onChange runs after each successful reload.
func NewWatcher(store *ConfigStore, onChange func(*ConfigStore)) *Watcher {
	return &Watcher{
		store:    store,
		onChange: onChange,
		debounce: defaultDebounce,
	}
}

// Run watches the config directory until ctx is cancelled.
// The directory is watched rather than the file so atomic renames are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.store.Path())
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Debug("Watching %s for config changes", w.store.Path())

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Config watcher error: %v", err)
		}
	}
}

// relevant reports whether an event may have changed the config file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.store.Path()) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) reload() {
	if err := w.store.Load(); err != nil {
		logger.Warn("Reloading config failed: %v", err)
		return
	}
	logger.Info("Config reloaded from %s", w.store.Path())
	if w.onChange != nil {
		w.onChange(w.store)
	}
}
