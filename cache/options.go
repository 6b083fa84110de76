package cache

import (
	"log/slog"

	"github.com/eips-wg/preprocessor/progress"
)

// Option configures Open.
type Option func(*options)

type options struct {
	root     string
	logger   *slog.Logger
	progress progress.Reporter
}

// WithRoot places the cache at root instead of the user cache directory.
//
// Example:
//
//	c, err := cache.Open(ctx, cache.WithRoot(t.TempDir()))
func WithRoot(root string) Option {
	return func(o *options) {
		o.root = root
	}
}

// WithLogger sets the logger used for lock waits and fetches.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithProgress sets the reporter that receives fetch progress.
func WithProgress(rep progress.Reporter) Option {
	return func(o *options) {
		o.progress = rep
	}
}
