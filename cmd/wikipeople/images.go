package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "images",
		Short: "Fetch portraits for people not tried yet",
		Long: "Looks up the infobox portrait of every stored person whose portrait was never " +
			"attempted. Both successes and failures are recorded, so nobody is tried twice.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				result, err := deps.Pipeline.FetchImages(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Attempted %d: %d downloaded, %d already on disk, %d failed\n",
					result.Attempted, result.Downloaded, result.Cached, result.Failed)
				return nil
			})
		},
	}
}
