package main

import (
	"github.com/spf13/cobra"
)

func newBackfillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill <file>",
		Short: "Store the candidates of a hand-made list",
		Long: "Ingests a candidate file in the \"<references> <year> |<title>\" line format. " +
			"People already stored are left untouched, so the same file can be loaded twice.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				result, err := deps.Pipeline.IngestFile(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				displayIngestResult(cmd.OutOrStdout(), args[0], result)
				return nil
			})
		},
	}
}
