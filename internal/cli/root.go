// Package cli implements the eips-build command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/eips-wg/preprocessor/cache"
	"github.com/eips-wg/preprocessor/config"
	"github.com/eips-wg/preprocessor/errors"
	"github.com/eips-wg/preprocessor/layout"
	"github.com/eips-wg/preprocessor/lock"
)

// app holds the global flags and what PersistentPreRunE derives from them.
type app struct {
	rootFlag   string
	staging    bool
	configPath string
	cacheDir   string
	logLevel   string

	root   string
	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "eips-build",
		Short: "Build tooling for Ethereum EIPs and ERCs",
		Long: `eips-build prepares an EIPs or ERCs working copy for checking and rendering.

It copies the working copy into build/repo, fetches the family's upstream
repository, and merges in the proposals of the other family so that links
between EIPs and ERCs resolve.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.rootFlag, "root", "C", "", "Use `ROOT` as the base directory instead of finding it automatically")
	flags.BoolVar(&a.staging, "staging", false, "Use the staging repositories (for testing)")
	flags.StringVar(&a.configPath, "config", "", "TOML file overriding the repository locations")
	flags.StringVar(&a.cacheDir, "cache-dir", "", "Cache directory (default: user cache directory)")
	flags.StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newChangedCommand(a),
		newMergeCommand(a),
		newCheckCommand(a),
		newCleanCommand(a),
		newCacheCommand(a),
	)
	return cmd
}

// Execute runs the command tree against os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level, err := charmlog.ParseLevel(a.logLevel)
	if err != nil {
		return errors.Wrapf(err, errors.CodeInvalidInput, "invalid log level %q", a.logLevel)
	}
	a.logger = slog.New(charmlog.NewWithOptions(cmd.ErrOrStderr(), charmlog.Options{
		Level:  level,
		Prefix: "eips-build",
	}))

	a.cfg = config.Production()
	if a.staging {
		a.cfg = config.Staging()
	}
	if a.configPath != "" {
		if a.cfg, err = config.Load(a.configPath, a.cfg); err != nil {
			return err
		}
	}
	return nil
}

// resolveRoot finds the project root, or checks the one given with -C.
func (a *app) resolveRoot() (string, error) {
	if a.root != "" {
		return a.root, nil
	}

	if a.rootFlag == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.CodeFilesystem, "failed to get working directory")
		}
		root, err := layout.FindRoot(cwd)
		if err != nil {
			return "", errors.Wrap(err, errors.CodeNotFound, "cannot find repository root")
		}
		a.root = root
		return root, nil
	}

	root, err := filepath.Abs(a.rootFlag)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeFilesystem, "failed to resolve root")
	}
	if !layout.IsRoot(osfs.New("/"), filepath.ToSlash(root)) {
		return "", errors.WithContext(
			errors.Newf(errors.CodeInvalidInput, "%s is not a repository root (needs .git and content)", root),
			"root", root,
		)
	}
	a.root = root
	return root, nil
}

// withBuildLock runs fn while holding build/.lock.
func (a *app) withBuildLock(ctx context.Context, fn func(root string) error) (err error) {
	root, err := a.resolveRoot()
	if err != nil {
		return err
	}

	held, err := lock.Acquire(ctx, layout.LockPath(root), a.logger, "build directory")
	if err != nil {
		return err
	}
	defer func() {
		if rerr := held.Release(); rerr != nil {
			err = multierror.Append(err, rerr).ErrorOrNil()
		}
	}()

	return fn(root)
}

// openCache opens the shared cache, honouring --cache-dir.
func (a *app) openCache(ctx context.Context) (*cache.Cache, error) {
	opts := []cache.Option{cache.WithLogger(a.logger), cache.WithProgress(a.progress())}
	if a.cacheDir != "" {
		opts = append(opts, cache.WithRoot(a.cacheDir))
	}
	return cache.Open(ctx, opts...)
}

func printf(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}
