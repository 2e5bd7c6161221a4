package main

import (
	"github.com/spf13/cobra"
)

func newInsertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insert <year>",
		Short: "Store the candidates of one year",
		Long: "Reads the year's candidate list and stores every candidate with enough references " +
			"that is not stored yet, together with its summary.\n\n" + yearCodeHelp,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}

			return withDeps(cmd.Context(), func(deps *Deps) error {
				result, err := deps.Pipeline.IngestYear(cmd.Context(), year)
				if err != nil {
					return err
				}
				displayIngestResult(cmd.OutOrStdout(), year.String(), result)
				return nil
			})
		},
	}
}
