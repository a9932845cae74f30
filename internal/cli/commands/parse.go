package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/a3tai/mcp-planning-hours/internal/pdf"
	"github.com/a3tai/mcp-planning-hours/internal/report"
)

// NewParseCommand creates the parse command.
func NewParseCommand(opts *GlobalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <planning.pdf>...",
		Short: "Print the weekly worked hours of plannings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts, args, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	return cmd
}

func runParse(cmd *cobra.Command, opts *GlobalOptions, paths []string, asJSON bool) error {
	ctx := commandContext(cmd)
	sess, err := openSession(ctx, opts, false)
	if err != nil {
		return err
	}
	defer sess.Close()

	out := cmd.OutOrStdout()
	results := make([]*pdf.ScheduleResult, 0, len(paths))
	for _, path := range paths {
		svc, abs, err := sess.service(path)
		if err != nil {
			return err
		}
		res, err := svc.ParseFile(ctx, pdf.ScheduleParseRequest{Path: abs})
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	if asJSON {
		return writeJSON(out, results)
	}

	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, report.FormatWeeks(res.Person, res.Weeks))
	}
	return nil
}

// writeJSON encodes results with hours rounded to two decimals.
func writeJSON(w io.Writer, results []*pdf.ScheduleResult) error {
	rounded := make([]pdf.ScheduleResult, len(results))
	for i, res := range results {
		rounded[i] = *res
		rounded[i].Weeks = res.Weeks.Rounded()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rounded)
}
