package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/a3tai/mcp-planning-hours/internal/analytics"
	"github.com/a3tai/mcp-planning-hours/internal/report"
	"github.com/a3tai/mcp-planning-hours/internal/store"
)

type summaryOptions struct {
	person string
	year   int
	xlsx   string
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(opts *GlobalOptions) *cobra.Command {
	sopts := &summaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary [planning.pdf...]",
		Short: "Count high and low weeks per year",
		Long: `Count high and low weeks per year and person, with the longest runs of each.

Plannings given as arguments are imported before the analysis.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, opts, sopts, args)
		},
	}

	cmd.Flags().StringVar(&sopts.person, "person", "", "Only this person")
	cmd.Flags().IntVar(&sopts.year, "year", 0, "Only this ISO week-year")
	cmd.Flags().StringVar(&sopts.xlsx, "xlsx", "", "Also write an Excel workbook to this file")

	return cmd
}

func runSummary(cmd *cobra.Command, opts *GlobalOptions, sopts *summaryOptions, paths []string) error {
	if opts.Threshold <= 0 {
		return fmt.Errorf("high threshold must be positive")
	}

	ctx := commandContext(cmd)
	sess, err := openSession(ctx, opts, true)
	if err != nil {
		return err
	}
	defer sess.Close()

	if _, err := sess.importFiles(ctx, paths); err != nil {
		return err
	}

	records, err := sess.store.List(ctx, store.Filter{Person: sopts.person, Year: sopts.year})
	if err != nil {
		return err
	}
	summaries := analytics.YearlySummaries(records, opts.Threshold)

	if err := report.WriteSummaries(cmd.OutOrStdout(), summaries, opts.Threshold); err != nil {
		return err
	}
	if sopts.xlsx == "" {
		return nil
	}

	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, records, summaries, opts.Threshold); err != nil {
		return err
	}
	if err := os.WriteFile(sopts.xlsx, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", sopts.xlsx, err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Workbook written to %s\n", sopts.xlsx)
	return err
}
