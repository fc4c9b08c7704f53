package main

import (
	"encoding/json"
	"fmt"
	"io"

	"condo/internal/cli"
	"condo/internal/core"

	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the monthly and year-to-date summary as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, err := parseMonthFlag(month)
			if err != nil {
				return err
			}
			return withApp(cmd, func(app *cli.App) error {
				if ref.IsZero() {
					ref = app.Session.Today()
				}
				sum, err := app.Session.SummaryAt(cmd.Context(), ref)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), sum)
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to summarise as YYYY-MM (default: current month)")
	return cmd
}

func parseMonthFlag(month string) (core.Date, error) {
	if month == "" {
		return core.Date{}, nil
	}
	d, err := core.ParseMonth(month)
	if err != nil {
		return core.Date{}, fmt.Errorf("--month: %w", err)
	}
	return d, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
