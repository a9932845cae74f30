package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a3tai/mcp-planning-hours/internal/pdf"
)

// NewTextCommand creates the text command, which dumps the extracted text
// layer the parser works on.
func NewTextCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "text <file.pdf>",
		Short: "Print the text layer of a PDF, one text run per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := pdf.NewExtractor(opts.MaxFileSize).ExtractFile(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			return err
		},
	}
}
