package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members <profession>",
		Short: "List the people of a profession",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				titles, err := deps.Reports.ProfessionMembers(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("listing members: %w", err)
				}

				out := cmd.OutOrStdout()
				if len(titles) == 0 {
					fmt.Fprintf(out, "No people in %q.\n", args[0])
					return nil
				}
				for _, title := range titles {
					fmt.Fprintln(out, title)
				}
				return nil
			})
		},
	}
}
