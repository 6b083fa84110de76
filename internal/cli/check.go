package cli

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/eips-wg/preprocessor/exec"
	"github.com/eips-wg/preprocessor/layout"
)

// Environment passed to the check command.
const (
	envThemeDir = "EIPS_THEME_DIR"
	envBaseURL  = "EIPS_BASE_URL"
	envFamily   = "EIPS_FAMILY"
	envOutput   = "EIPS_OUTPUT_DIR"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [-- COMMAND [ARGS...]]",
		Short: "Merge, fetch the theme and run a checker on changed proposals",
		Long: `Prepare the merged checkout, check out the pinned theme from the cache and,
when a command is given, run it inside the merged checkout with the changed
proposal paths appended to its arguments.

The command receives EIPS_THEME_DIR, EIPS_BASE_URL, EIPS_FAMILY and
EIPS_OUTPUT_DIR in its environment. Its exit status becomes the exit status
of eips-build.

Examples:
  eips-build check
  eips-build check -- eipw --config eipw.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return a.withBuildLock(ctx, func(root string) error {
				up, err := a.prepare(ctx, root)
				if err != nil {
					return err
				}

				// Only local changes are checked, never files merged in.
				files, err := up.ChangedFiles(ctx)
				if err != nil {
					return err
				}
				proposals := lo.Filter(files, func(f string, _ int) bool { return layout.IsProposalPath(f) })

				if err := up.Merge(ctx); err != nil {
					return err
				}

				c, err := a.openCache(ctx)
				if err != nil {
					return err
				}
				themeDir, err := c.Repo(ctx, a.cfg.Theme.Repository, a.cfg.Theme.Commit)
				if cerr := c.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return err
				}
				a.logger.Debug("theme ready", "path", themeDir)

				if len(args) == 0 {
					a.logger.Info("checked", "proposals", len(proposals))
					return nil
				}

				loc := a.cfg.Locations[up.Family().String()]
				hook := exec.NewWrapper(exec.New(exec.WithInheritEnv()), args...)
				_, err = hook.
					WithContext(ctx).
					WithDir(up.Path()).
					WithEnv(map[string]string{
						envThemeDir: themeDir,
						envBaseURL:  loc.BaseURL,
						envFamily:   up.Family().String(),
						envOutput:   layout.OutputPath(root),
					}).
					WithStdout(cmd.OutOrStdout()).
					WithStderr(cmd.ErrOrStderr()).
					WithPassthrough().
					Run(proposals...)
				return err
			})
		},
	}
}
