package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPersonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "person <title>",
		Short: "Show a stored person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				person, err := deps.Reports.PersonDetails(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("finding person: %w", err)
				}
				if person == nil {
					return fmt.Errorf("%q is not stored", args[0])
				}
				displayPerson(cmd.OutOrStdout(), person)
				return nil
			})
		},
	}
}
