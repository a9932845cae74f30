// Package cli provides the planning command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/a3tai/mcp-planning-hours/internal/cli/commands"
	"github.com/a3tai/mcp-planning-hours/internal/config"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &commands.GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "planning",
		Short: "Compute weekly worked hours from planning PDFs",
		Long: `planning reads "Planning de travail" PDF exports and computes the hours worked
per ISO week, counting work activities and leaving out absences, leave and breaks.

Without --database-url, records live only for the duration of the command: pass
the plannings to summary or dashboard directly to analyze them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.DatabaseURL, "database-url", os.Getenv("PLANNING_DATABASE_URL"),
		"PostgreSQL URL for stored weeks (env PLANNING_DATABASE_URL)")
	flags.StringVar(&opts.LogLevel, "loglevel", "warn", "Log level (debug, info, warn, error)")
	flags.Float64Var(&opts.Threshold, "high-threshold", config.DefaultHighThreshold,
		"Weekly hours above which a week counts as high")
	flags.Int64Var(&opts.MaxFileSize, "maxfilesize", config.DefaultMaxFileSize, "Maximum PDF size in bytes")

	rootCmd.AddCommand(commands.NewParseCommand(opts))
	rootCmd.AddCommand(commands.NewTextCommand(opts))
	rootCmd.AddCommand(commands.NewExportCommand(opts))
	rootCmd.AddCommand(commands.NewSaveCommand(opts))
	rootCmd.AddCommand(commands.NewSummaryCommand(opts))
	rootCmd.AddCommand(commands.NewDashboardCommand(opts))
	rootCmd.AddCommand(commands.NewPersonsCommand(opts))
	rootCmd.AddCommand(commands.NewDeleteCommand(opts))
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
