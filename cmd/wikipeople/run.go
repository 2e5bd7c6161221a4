package main

import (
	"github.com/spf13/cobra"

	"github.com/ersonp/wikipeople/internal/application/handlers"
)

func newRunCmd() *cobra.Command {
	var (
		start int
		end   int
		opts  handlers.RunOptions
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Collect, store, classify and prune people born in a range of years",
		Long: "Writes the candidate list of every year in the range, stores the sufficiently " +
			"referenced candidates, filters them by profession and finally fetches portraits.\n\n" +
			yearCodeHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				result, err := deps.Pipeline.RunYearRange(cmd.Context(), start, end, opts)
				if err != nil {
					return err
				}
				displayRunResult(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "First year of the range")
	cmd.Flags().IntVar(&end, "end", 0, "Last year of the range (inclusive)")
	cmd.Flags().BoolVar(&opts.SkipImages, "skip-images", false, "Stop after pruning")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Rescan years that already have a candidate list")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
