package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/wikipeople/internal/application/handlers"
)

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the semantic index of summaries",
		Long:  "Embeds every stored summary and replaces the Qdrant collection contents.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIndexHandler(cmd.Context(), func(h *handlers.IndexHandler) error {
				n, err := h.Rebuild(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d people\n", n)
				return nil
			})
		},
	}
}
