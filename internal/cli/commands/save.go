package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNoDatabase = errors.New("--database-url is required to keep records between runs")

// NewSaveCommand creates the save command.
func NewSaveCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save <planning.pdf>...",
		Short: "Store the weekly hours of plannings in the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.DatabaseURL == "" {
				return errNoDatabase
			}

			ctx := commandContext(cmd)
			sess, err := openSession(ctx, opts, true)
			if err != nil {
				return err
			}
			defer sess.Close()

			results, err := sess.importFiles(ctx, args)
			for _, res := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d weeks for %s (import %s)\n", res.Written, res.Person, res.ImportID)
			}
			return err
		},
	}
}
