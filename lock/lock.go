// Package lock provides cross-process advisory file locks.
//
// A lock is taken on a dedicated file (for example "<cache>/.lock"). If
// another process already holds it, Acquire logs that it is waiting and then
// blocks until the holder releases it or the context is cancelled. The lock
// is released automatically by the OS if the holding process dies.
package lock

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/eips-wg/preprocessor/errors"
)

// retryDelay is how often a contended lock is polled.
const retryDelay = 250 * time.Millisecond

// File is a held advisory lock.
type File struct {
	path string
	mu   *flock.Flock
}

// Acquire takes the exclusive lock on path, creating the file and its parent
// directory if needed. When the lock is held elsewhere, "waiting on <what>..."
// is logged at info level and Acquire blocks without a deadline.
func Acquire(ctx context.Context, path string, logger *slog.Logger, what string) (*File, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeFilesystem, "failed to create lock directory",
			map[string]interface{}{"path": path})
	}

	mu := flock.New(path)
	ok, err := mu.TryLock()
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeLockFailed, "failed to lock "+what,
			map[string]interface{}{"path": path, "pid": os.Getpid()})
	}

	if !ok {
		logger.Info("waiting on " + what + "...")
		ok, err = mu.TryLockContext(ctx, retryDelay)
		if err != nil {
			return nil, errors.WrapWithContext(err, errors.CodeLockFailed, "failed to lock "+what,
				map[string]interface{}{"path": path, "pid": os.Getpid()})
		}
		if !ok {
			return nil, errors.WithContext(errors.New(errors.CodeLockFailed, "lock not acquired: "+what), "path", path)
		}
	}

	logger.Debug("lock acquired", "path", path)
	return &File{path: path, mu: mu}, nil
}

// Path returns the lock file path.
func (f *File) Path() string {
	return f.path
}

// Release unlocks the file. The lock file itself is left in place so other
// processes keep locking the same inode. Releasing twice is a no-op.
func (f *File) Release() error {
	if f == nil || !f.mu.Locked() {
		return nil
	}
	if err := f.mu.Unlock(); err != nil {
		return errors.WrapWithContext(err, errors.CodeLockFailed, "failed to release lock",
			map[string]interface{}{"path": f.path})
	}
	return nil
}
