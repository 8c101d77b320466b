package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"JournalClub/internal/domain"
	"JournalClub/internal/usecase"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Reconcile the curated table with the extracted records and write the artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.application(cmd)
			if err != nil {
				return err
			}
			report, err := application.Build(cmd.Context())
			if err != nil {
				return err
			}

			cfg := application.Config()
			fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s\n", cfg.Output.SessionsPath, cfg.Output.SubjectsPath)
			return nil
		},
	}
}

func renderReport(report usecase.Report) string {
	rows := [][]string{
		{"Indexed records", strconv.Itoa(report.Indexed)},
		{"Curated rows", strconv.Itoa(report.Rows)},
		{"Sessions written", strconv.Itoa(report.Sessions)},
		{"Monthly summaries", strconv.Itoa(report.Summaries)},
		{"Subject months", strconv.Itoa(report.Months)},
		{"Skipped (no PMID)", strconv.Itoa(report.Skipped[domain.DiagnosticEmptyIdentifier])},
		{"Skipped (PMID not indexed)", strconv.Itoa(report.Skipped[domain.DiagnosticUnmatchedIdentifier])},
	}
	return renderTable([]string{"Step", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}
