package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newMergeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Prepare build/repo with the proposals of every family merged in",
		Long: `Copy the working copy into build/repo, fetch upstream and merge the content
of every other family into it, one merge commit per family. Prints the path
of the merged checkout.

Merging fails on the first file that exists on both sides with different
content; nothing is committed in that case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withBuildLock(cmd.Context(), func(root string) error {
				up, err := a.prepareMerged(cmd.Context(), root)
				if err != nil {
					return err
				}

				a.logger.Info(color.GreenString("merged"), "family", up.Family().String(), "head", up.Head().String())
				printf(cmd.OutOrStdout(), "%s\n", up.Path())
				return nil
			})
		},
	}
}
