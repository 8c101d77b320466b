package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"JournalClub/internal/domain"
)

func newSubjectsCommand(ctx *commandContext) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "Show subject counts per month from the last build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.application(cmd)
			if err != nil {
				return err
			}
			freq, err := application.Subjects(cmd.Context())
			if err != nil {
				return err
			}

			rows := subjectRows(freq, strings.TrimSpace(month))
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No subjects recorded")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Month", "Subject", "Sessions"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Only show one month (YYYY-MM)")
	return cmd
}

func subjectRows(freq domain.SubjectFrequency, month string) [][]string {
	var rows [][]string
	for _, m := range freq {
		if month != "" && m.Month != month {
			continue
		}
		for _, c := range m.Counts {
			rows = append(rows, []string{m.Month, c.Subject, strconv.Itoa(c.Count)})
		}
	}
	return rows
}
