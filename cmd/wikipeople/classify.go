package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify",
		Short: "Rebuild profession associations from the keyword ruleset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				result, err := deps.Pipeline.Classify(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Applied %d rules: %d associations\n", result.Rules, result.Associations)
				if result.Malformed > 0 {
					fmt.Fprintf(out, "Skipped %d malformed rule lines\n", result.Malformed)
				}
				return nil
			})
		},
	}
}
