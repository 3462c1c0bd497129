package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "warden",
	Short: "warden moderation journal",
	Long: `warden routes moderation events to their configured sinks.

Available commands:
  serve    Run the journal service with the reference sinks
  icons    List the symbolic icon table

Use "warden [command] --help" for more information about a specific command.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
