package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ersonp/wikipeople/internal/domain/entities"
)

func newCandidatesCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "candidates <year>",
		Short: "Write the candidate list of one year",
		Long: "Lists the year's birth category and records each member with its reference count. " +
			"A year that already has a list is skipped unless --force is given.\n\n" + yearCodeHelp,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}

			return withDeps(cmd.Context(), func(deps *Deps) error {
				result, err := deps.Pipeline.ScanYear(cmd.Context(), year, force)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if result.Skipped {
					fmt.Fprintf(out, "%s already has a candidate list (use --force to rescan)\n", year)
					return nil
				}
				fmt.Fprintf(out, "%s: %d candidates, %d unavailable\n", year, result.Members, result.Unavailable)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Discard an existing list and rescan")

	return cmd
}

// parseYear reads a year code from the command line.
func parseYear(arg string) (entities.BirthYear, error) {
	code, err := strconv.Atoi(arg)
	if err != nil {
		return entities.BirthYear{}, fmt.Errorf("invalid year %q: must be an integer", arg)
	}
	return entities.BirthYearFromCode(code), nil
}
