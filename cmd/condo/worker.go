package main

import (
	"errors"

	"condo/internal/cli"
	"condo/internal/log"
	"condo/internal/worker"

	"github.com/spf13/cobra"
)

func workerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Re-export affected months to Google Sheets as change events arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cfg.SheetsEnabled() {
				return errors.New("worker needs GOOGLE_SPREADSHEET_ID")
			}
			if !cfg.SharedStore() {
				return errors.New("worker needs the store shared with serve: set DATA_BACKEND=sqlite with a file SQLITE_DSN")
			}
			return withApp(cmd, func(app *cli.App) error {
				consumer := app.Events()
				if consumer == nil {
					return errors.New("worker needs a reachable AMQP broker (AMQP_URL)")
				}
				app.Logger.Info("Starting export worker",
					log.FieldOperation, log.OpStartup,
					"queue", app.Config.ExportQueue,
					"interval", app.Config.ExportInterval)

				w := worker.NewExportWorker(app.Session, app.Logger, app.Config.ExportQueue, app.Config.ExportInterval)
				if err := w.Run(cmd.Context(), consumer); err != nil {
					return err
				}
				app.Logger.Info("Export worker stopped", log.FieldOperation, log.OpShutdown)
				return nil
			})
		},
	}
}
