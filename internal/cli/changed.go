package cli

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/eips-wg/preprocessor/errors"
	"github.com/eips-wg/preprocessor/layout"
)

// Output formats for the changed command.
const (
	formatNewline = "newline"
	formatNul     = "nul"
	formatJSON    = "json"
)

func newChangedCommand(a *app) *cobra.Command {
	var (
		all    bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "changed",
		Short: "List files changed since the last commit shared with upstream",
		Long: `List files changed locally since the last commit common to both the local
and the upstream repository. Only proposal documents are listed unless --all
is given.

Examples:
  eips-build changed
  eips-build changed --all --format json
  eips-build changed --format nul | xargs -0 eipw`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sep, err := separator(format)
			if err != nil {
				return err
			}

			return a.withBuildLock(cmd.Context(), func(root string) error {
				up, err := a.prepare(cmd.Context(), root)
				if err != nil {
					return err
				}

				files, err := up.ChangedFiles(cmd.Context())
				if err != nil {
					return err
				}
				if !all {
					files = lo.Filter(files, func(f string, _ int) bool { return layout.IsProposalPath(f) })
				}

				return printFiles(cmd, files, format, sep)
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "List all changed files, not just proposals")
	cmd.Flags().StringVar(&format, "format", formatNewline, "Output format (newline, nul, json)")
	return cmd
}

func separator(format string) (string, error) {
	switch format {
	case formatNewline:
		return "\n", nil
	case formatNul:
		return "\x00", nil
	case formatJSON:
		return "", nil
	default:
		return "", errors.Newf(errors.CodeInvalidInput, "unknown format %q", format)
	}
}

func printFiles(cmd *cobra.Command, files []string, format, sep string) error {
	out := cmd.OutOrStdout()

	if format == formatJSON {
		if files == nil {
			files = []string{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(files); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "failed to write file list")
		}
		return nil
	}

	if bad, ok := lo.Find(files, func(f string) bool { return strings.Contains(f, sep) }); ok {
		return errors.WithContext(
			errors.Newf(errors.CodeInvalidInput, "changed file path contains the %s separator", format),
			"path", bad,
		)
	}
	if len(files) > 0 {
		printf(out, "%s\n", strings.Join(files, sep))
	}
	return nil
}
