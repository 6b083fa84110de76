package cache

import (
	"context"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/crypto/sha3"

	"github.com/eips-wg/preprocessor/errors"
	"github.com/eips-wg/preprocessor/lock"
	"github.com/eips-wg/preprocessor/progress"
)

const (
	// Name is the directory created under the user cache directory.
	Name = "eips-build"

	lockFile = ".lock"
)

// Cache is an opened, locked cache root.
type Cache struct {
	root     string
	fs       billy.Filesystem
	lock     *lock.File
	index    *index
	logger   *slog.Logger
	progress progress.Reporter
}

// DefaultRoot returns <user cache dir>/eips-build.
func DefaultRoot() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(err, errors.CodeFilesystem, "failed to determine user cache directory")
	}
	return filepath.Join(dir, Name), nil
}

// Open creates the cache root if needed and takes its lock, waiting for
// other processes to release it. The lock is held until Close.
func Open(ctx context.Context, opts ...Option) (*Cache, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.progress == nil {
		o.progress = progress.Nop()
	}

	root := o.root
	if root == "" {
		var err error
		if root, err = DefaultRoot(); err != nil {
			return nil, err
		}
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeFilesystem, "failed to resolve cache root")
	}

	fs := osfs.New("/")
	if err := fs.MkdirAll(root, 0o755); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeFilesystem, "failed to create cache root",
			map[string]interface{}{"path": root})
	}

	held, err := lock.Acquire(ctx, filepath.Join(root, lockFile), o.logger, "cache directory")
	if err != nil {
		return nil, err
	}

	idx, ok, err := loadIndex(fs, filepath.Join(root, indexFile))
	if err != nil {
		_ = held.Release()
		return nil, err
	}
	if !ok {
		o.logger.Warn("discarding unreadable cache index", "path", filepath.Join(root, indexFile))
	}

	return &Cache{
		root:     root,
		fs:       fs,
		lock:     held,
		index:    idx,
		logger:   o.logger,
		progress: o.progress,
	}, nil
}

// Root returns the absolute cache root.
func (c *Cache) Root() string {
	return c.root
}

// Dir returns the directory for key, creating it if needed. The directory
// name is the hex SHA3-256 of key.
func (c *Cache) Dir(key string) (string, error) {
	name := dirName(key)
	dir := filepath.Join(c.root, name)

	if err := c.fs.MkdirAll(dir, 0o755); err != nil {
		return "", errors.WrapWithContext(err, errors.CodeFilesystem, "failed to create cache directory",
			map[string]interface{}{"path": dir})
	}

	c.index.touch(key, name, time.Now())
	if err := c.index.save(c.fs, filepath.Join(c.root, indexFile)); err != nil {
		c.logger.Warn("failed to update cache index", "error", err)
	}

	return dir, nil
}

// Close saves the index and releases the lock.
func (c *Cache) Close() error {
	var result *multierror.Error

	if err := c.index.save(c.fs, filepath.Join(c.root, indexFile)); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.lock.Release(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func dirName(key string) string {
	sum := sha3.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
