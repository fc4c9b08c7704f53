package main

import (
	"context"
	"errors"
	"net/http"

	"condo/internal/cli"
	apphttp "condo/internal/http"
	"condo/internal/log"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(app *cli.App) error {
				return serve(cmd.Context(), app)
			})
		},
	}
}

// serve runs the server until ctx is cancelled, then shuts it down within
// the configured timeout.
func serve(ctx context.Context, app *cli.App) error {
	srv := apphttp.NewServer(apphttp.Options{
		Addr:               ":" + app.Config.Port,
		Session:            app.Session,
		Logger:             app.Logger,
		Metrics:            app.Metrics,
		RateLimitPerMinute: app.Config.RateLimitPerMinute,
		Ready:              app.Ready,
	})

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.Logger.Info("Starting condo server",
			"port", app.Config.Port,
			"backend", app.Config.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		app.Logger.Info("Shutting down server", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	app.Logger.Info("Server stopped gracefully")
	return nil
}
