package main

import (
	"fmt"

	"condo/internal/cli"
	"condo/internal/core"

	"github.com/spf13/cobra"
)

func unitsCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Print every unit with its payment status as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var ref core.Date
			if at != "" {
				d, err := core.ParseDate(at)
				if err != nil {
					return fmt.Errorf("--at: %w", err)
				}
				ref = d
			}
			return withApp(cmd, func(app *cli.App) error {
				statuses, err := app.Session.UnitStatuses(cmd.Context(), ref)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), statuses)
			})
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "reference day as YYYY-MM-DD (default: today)")
	return cmd
}
