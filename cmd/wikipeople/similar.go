package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/wikipeople/internal/application/handlers"
)

func newSimilarCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "similar <text>",
		Short: "Find people whose summaries resemble the text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			return withIndexHandler(cmd.Context(), func(h *handlers.IndexHandler) error {
				hits, err := h.Similar(cmd.Context(), text, limit)
				if err != nil {
					return fmt.Errorf("searching: %w", err)
				}
				if len(hits) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No similar people found. Has 'wikipeople index' been run?")
					return nil
				}
				displaySimilar(cmd.OutOrStdout(), hits)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultSimilarLimit, "Maximum number of results")

	return cmd
}
