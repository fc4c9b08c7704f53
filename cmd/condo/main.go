package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"condo/internal/cli"
	"condo/internal/config"
	"condo/internal/log"

	"github.com/spf13/cobra"
)

var (
	envFile string
	version = "dev"

	cfg    *config.Config
	logger *log.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "condo",
		Short: "Rental complex finance dashboard",
		Long: `condo tracks the units of a rental complex, records its expenses and
computes monthly and year-to-date income, expenses and balances split
between the two owners.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: initApp,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(serveCmd())
	root.AddCommand(summaryCmd())
	root.AddCommand(unitsCmd())
	root.AddCommand(workerCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initApp(cmd *cobra.Command, _ []string) error {
	if err := cli.LoadEnvFile(envFile); err != nil {
		return err
	}
	loaded, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	// Commands that print JSON keep stdout clean.
	out := os.Stdout
	if cmd.Name() != "serve" && cmd.Name() != "worker" {
		out = os.Stderr
	}
	l, err := cli.SetupLogger(loaded, out)
	if err != nil {
		return err
	}
	cfg, logger = loaded, l
	return nil
}

// withApp bootstraps the application for the duration of fn.
func withApp(cmd *cobra.Command, fn func(*cli.App) error) error {
	app, err := cli.Bootstrap(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to close application", log.FieldError, closeErr.Error())
		}
	}()
	return fn(app)
}
