package cli

import (
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"

	"github.com/eips-wg/preprocessor/errors"
	"github.com/eips-wg/preprocessor/layout"
	"github.com/eips-wg/preprocessor/lock"
)

func newCleanCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove temporary and output files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := a.resolveRoot()
			if err != nil {
				return err
			}

			// Wait for any running build before removing its files.
			held, err := lock.Acquire(cmd.Context(), layout.LockPath(root), a.logger, "build directory")
			if err != nil {
				return err
			}
			if err := held.Release(); err != nil {
				return err
			}

			build := layout.BuildPath(root)
			if err := util.RemoveAll(osfs.New("/"), build); err != nil {
				return errors.WrapWithContext(err, errors.CodeFilesystem, "unable to remove build directory",
					map[string]interface{}{"path": build})
			}

			a.logger.Info("removed build directory", "path", build)
			return nil
		},
	}
}
