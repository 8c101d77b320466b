package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPopulateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "populate",
		Short: "Rewrite the curated table so it lists every indexed article",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.application(cmd)
			if err != nil {
				return err
			}
			n, err := application.Populate(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", n, application.Config().Input.SessionsTable)
			return nil
		},
	}
}
