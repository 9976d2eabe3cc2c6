package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock guards against two servers sharing one data directory.
type Lock struct {
	path  string
	flock *flock.Flock
}

// AcquireLock takes the single-instance lock at path. It fails immediately
// when another process holds it.
func AcquireLock(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another instance holds the lock at %s", path)
	}
	return &Lock{path: path, flock: lock}, nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}
