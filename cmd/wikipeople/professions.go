package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "professions",
		Short: "Show how many people each profession has",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				counts, err := deps.Reports.ProfessionCounts(cmd.Context())
				if err != nil {
					return fmt.Errorf("counting professions: %w", err)
				}
				if len(counts) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No associations. Run 'wikipeople classify' first.")
					return nil
				}
				displayProfessionCounts(cmd.OutOrStdout(), counts)
				return nil
			})
		},
	}
}
