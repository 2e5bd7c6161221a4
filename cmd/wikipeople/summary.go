package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show dataset totals and portrait outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				summary, err := deps.Reports.Summary(cmd.Context())
				if err != nil {
					return fmt.Errorf("summarizing dataset: %w", err)
				}
				displaySummary(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}
}
