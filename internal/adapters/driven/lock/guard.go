// Package lock provides a file-lock backed OperationGuard so two curio
// processes never run a bulk operation on the same collection at once.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/curio-cli/internal/logger"
)

// Verify interface compliance.
var _ driven.OperationGuard = (*FileGuard)(nil)

// FileGuard holds one lock file per collection under a directory.
type FileGuard struct {
	dir string
}

// NewFileGuard creates a guard storing lock files in dir.
// If dir is empty, ~/.curio/locks is used.
func NewFileGuard(dir string) (*FileGuard, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".curio", "locks")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}
	return &FileGuard{dir: dir}, nil
}

// TryLock acquires the collection's lock file without blocking.
func (g *FileGuard) TryLock(collection string) (func(), error) {
	path := g.lockPath(collection)
	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w on collection %q", domain.ErrOperationInProgress, collection)
	}
	logger.Debug("Acquired bulk lock %s", path)

	return func() {
		if err := fl.Unlock(); err != nil {
			logger.Warn("Releasing bulk lock %s: %v", path, err)
		}
	}, nil
}

// lockPath maps a collection name to a safe file name.
func (g *FileGuard) lockPath(collection string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, collection)
	if safe == "" {
		safe = "_"
	}
	return filepath.Join(g.dir, safe+".lock")
}
