// Package main provides the entry point for the wikipeople CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	verbose bool
	quiet   bool
)

func main() {
	// A missing .env is normal; real variables still apply.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:           "wikipeople",
		Short:         "Build a dataset of notable people from the encyclopedia's birth categories",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging(logrus.StandardLogger(), verbose, quiet)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")

	rootCmd.AddCommand(
		newInitCmd(),
		newRunCmd(),
		newCandidatesCmd(),
		newInsertCmd(),
		newBackfillCmd(),
		newImagesCmd(),
		newClassifyCmd(),
		newPruneCmd(),
		newProfessionsCmd(),
		newMembersCmd(),
		newPersonCmd(),
		newSummaryCmd(),
		newHistoryCmd(),
		newIndexCmd(),
		newSimilarCmd(),
		newExportCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}

// initLogging sets the level of logger. Quiet wins over verbose.
func initLogging(logger *logrus.Logger, verbose, quiet bool) {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	switch {
	case quiet:
		logger.SetLevel(logrus.ErrorLevel)
	case verbose:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
}
