package lock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/genspectrum/sourcewatch/internal/errs"
	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/gofrs/flock"
)

// Guard is an exclusive, non-blocking lock on a sidecar file.
type Guard struct {
	fl *flock.Flock
}

// Acquire takes the lock or fails at once with errs.ErrLocked.
func Acquire(path string) (*Guard, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrLocked, path)
	}

	logger.Debug("lock: acquired %s", path)
	return &Guard{fl: fl}, nil
}

func (g *Guard) Release() error {
	if g == nil || g.fl == nil {
		return nil
	}
	if err := g.fl.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", g.fl.Path(), err)
	}
	logger.Debug("lock: released %s", g.fl.Path())
	return nil
}
