package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dcaulton/smartcal1/internal/cli"
	"github.com/dcaulton/smartcal1/internal/version"
)

func main() {
	checkCmd := cli.CheckCmd()

	rootCmd := &cobra.Command{
		Use:     "smartcal",
		Short:   "smartcal - weather-triggered camera maintenance agent",
		Version: version.String(),
		Long: `smartcal polls the weather on a schedule, logs temperature readings,
and when warmth is sustained asks a local model whether to create a reminder
task for testing the outside camera setup.

Running smartcal with no subcommand is equivalent to "smartcal check".`,
		// check is the default mode
		RunE: checkCmd.RunE,
	}

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(cli.SnoozeCmd())
	rootCmd.AddCommand(cli.TaskCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
