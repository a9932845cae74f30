package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/a3tai/mcp-planning-hours/internal/pdf"
)

// NewExportCommand creates the export command.
func NewExportCommand(opts *GlobalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <planning.pdf>",
		Short: "Write the weekly hours of a planning as CSV",
		Long: `Write the weekly hours of a planning as CSV.

The file is named heures_<person>_<date>.csv in the current directory unless
--output is given. Use --output - to write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (- for stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, opts *GlobalOptions, path, output string) error {
	ctx := commandContext(cmd)
	sess, err := openSession(ctx, opts, false)
	if err != nil {
		return err
	}
	defer sess.Close()

	svc, abs, err := sess.service(path)
	if err != nil {
		return err
	}
	export, err := svc.ExportCSV(ctx, pdf.ScheduleParseRequest{Path: abs})
	if err != nil {
		return err
	}

	if output == "-" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), export.Content)
		return err
	}
	if output == "" {
		output = export.FileName
	}
	if err := os.WriteFile(output, []byte(export.Content), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", export.Person, output)
	return err
}
