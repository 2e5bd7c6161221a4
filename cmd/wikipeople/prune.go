package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove people below their profession's reference threshold",
		Long: "Rebuilds the associations, removes people under the per-profession and " +
			"sole-profession thresholds from the config and rebuilds again.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				report, err := deps.Pipeline.Filter(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "People: %d -> %d (%d by profession, %d by sole profession)\n",
					report.Before, report.After, report.RemovedByProfession, report.RemovedBySole)
				return nil
			})
		},
	}
}
