package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/wikipeople/internal/application/handlers"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new wikipeople workspace",
		Long: "Creates a .wikipeople directory with default configuration, a starter keyword " +
			"ruleset and an empty database.",
		Args: cobra.NoArgs,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	result, err := handlers.NewInitHandler(openRepository).Handle(cmd.Context(), cwd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", result.ConfigPath)
	fmt.Fprintf(out, "Keyword ruleset: %s\n", result.KeywordsPath)
	fmt.Fprintf(out, "Database: %s\n", result.DatabasePath)
	fmt.Fprintln(out, "Edit the email in the config before the first run.")

	return nil
}
