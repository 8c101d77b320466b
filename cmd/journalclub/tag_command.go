package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tag",
		Short: "Recompute subject tags on the existing sessions artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.application(cmd)
			if err != nil {
				return err
			}
			freq, err := application.Tag(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Retagged %s (%d months)\n", application.Config().Output.SessionsPath, len(freq))
			return nil
		},
	}
}
