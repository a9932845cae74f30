package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a3tai/mcp-planning-hours/internal/store"
)

// NewPersonsCommand creates the persons command.
func NewPersonsCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "persons",
		Short: "List the persons with stored weeks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			sess, err := openSession(ctx, opts, true)
			if err != nil {
				return err
			}
			defer sess.Close()

			persons, err := sess.store.Persons(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(persons) == 0 {
				_, err := fmt.Fprintln(out, "Aucune personne enregistrée.")
				return err
			}
			for _, p := range persons {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <person>",
		Short: "Delete every stored week of a person",
		Args:  cobra.ExactArgs(1),
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

			n, err := sess.store.DeletePerson(ctx, args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no stored weeks for %s", args[0])
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d weeks for %s\n", n, args[0])
			return err
		},
	}
}
