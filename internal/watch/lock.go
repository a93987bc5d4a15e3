package watch

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"flipbook/internal/config"
)

// AcquireLock takes the single-instance watch lock. Only one watch worker may
// run per log directory; the caller must Unlock the returned lock on exit.
func AcquireLock(cfg *config.Config) (*flock.Flock, error) {
	lockPath := filepath.Join(cfg.Paths.LogDir, "flipbook-watch.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire watch lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another flipbook watch instance is already running")
	}
	return lock, nil
}
