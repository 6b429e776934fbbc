// Package lock guards a base directory against concurrent sort runs.
//
// The lock file lives outside the base directory, under the user cache
// directory, so it never shows up as a candidate file.
package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// ErrBusy is returned when another run holds the lock for the same base directory.
var ErrBusy = errors.New("another run is already in progress for this folder")

// RunLock is the state of one active run: its id and the held lock.
type RunLock struct {
	ID   string
	Base string
	Path string

	fl *flock.Flock
}

// DefaultDir returns the default lock directory.
// Uses XDG_CACHE_HOME if set, otherwise ~/.cache/folderchronicle/locks.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "folderchronicle", "locks")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return filepath.Join(os.TempDir(), "folderchronicle-locks")
		}
		return filepath.Join("/tmp", "folderchronicle-locks")
	}
	return filepath.Join(home, ".cache", "folderchronicle", "locks")
}

// FileName returns the lock file name for an absolute base directory.
func FileName(absBase string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(absBase)))
	return hex.EncodeToString(sum[:8]) + ".lock"
}

// Acquire takes the run lock for base without blocking. dir is the lock
// directory; empty means DefaultDir. Returns an error wrapping ErrBusy when
// the lock is held elsewhere.
func Acquire(dir, base string) (*RunLock, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("resolving base directory: %w", err)
	}
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating lock directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName(abs))
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBusy, abs)
	}

	return &RunLock{
		ID:   uuid.NewString(),
		Base: abs,
		Path: path,
		fl:   fl,
	}, nil
}

// Release drops the lock. The lock file itself is left in place.
func (l *RunLock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
