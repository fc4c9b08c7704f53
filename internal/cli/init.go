// Package cli wires configuration, logging and the service components for
// the condo commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"condo/internal/amqp"
	"condo/internal/backend"
	"condo/internal/config"
	"condo/internal/core"
	"condo/internal/events"
	"condo/internal/log"
	"condo/internal/metrics"
	"condo/internal/ports"
	"condo/internal/session"
	gsheet "condo/internal/sheets/google"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads .env files for local development. Missing files are
// ignored; a malformed one is an error.
func LoadEnvFile(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// SetupLogger builds the application logger from cfg, writing to out
// (stdout when nil), and makes it the slog default.
func SetupLogger(cfg *config.Config, out io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = os.Stdout
	}
	logger := log.New(log.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: log.ComponentApp,
		Output:    out,
	})
	log.SetDefault(logger)
	return logger, nil
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// App is a bootstrapped service: the session and everything it owns.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Metrics *metrics.Metrics
	Session *session.Session
	Store   ports.Store

	backend *backend.Result
	amqp    *amqp.Client
}

// Bootstrap opens the configured store, connects the optional AMQP publisher
// and Sheets exporter, and starts a session. An unreachable broker is logged
// and skipped; a Sheets configuration that cannot be used is an error.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.Discard()
	}
	app := &App{Config: cfg, Logger: logger, Metrics: metrics.New()}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger.Logger.With(log.FieldComponent, log.ComponentBackend)).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}
	app.backend = res
	app.Store = res.Store

	var publisher events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingPrefix)
		if err != nil {
			logger.WithComponent(log.ComponentAMQP).Warn("Failed to initialize AMQP client, continuing without events",
				log.FieldError, err.Error())
		} else {
			app.amqp = client
			publisher = client
			logger.WithComponent(log.ComponentAMQP).Info("Initialized AMQP publisher",
				"exchange", cfg.AMQPExchange,
				"routing_prefix", cfg.AMQPRoutingPrefix)
		}
	}

	var exporter ports.SummaryExporter
	if cfg.SheetsEnabled() {
		exp, err := gsheet.New(ctx, gsheet.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
			SummarySheet:    cfg.GoogleSummarySheet,
			LedgerSheet:     cfg.GoogleLedgerSheet,
		})
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("initialize Google Sheets exporter: %w", err)
		}
		exporter = exp
	}

	sess, err := session.New(session.Config{
		Store:     res.Store,
		Publisher: publisher,
		Exporter:  exporter,
		Metrics:   app.Metrics,
		Logger:    logger.WithComponent(log.ComponentSession),
		Property: core.Property{
			Name:        cfg.PropertyName,
			Description: cfg.PropertyDescription,
			Address:     cfg.PropertyAddress,
		},
		Partners: cfg.PartnerNames,
	})
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Session = sess

	logger.Info("Application bootstrapped",
		log.FieldOperation, log.OpStartup,
		"backend", cfg.DataBackend,
		"amqp_enabled", app.amqp != nil,
		"sheets_enabled", exporter != nil)
	return app, nil
}

// Events returns the connected AMQP client, or nil when events are off.
func (a *App) Events() *amqp.Client {
	return a.amqp
}

// Ready pings the store when it supports it.
func (a *App) Ready(ctx context.Context) error {
	if p, ok := a.Store.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases the AMQP connection and the store.
func (a *App) Close() error {
	var errs []error
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	if err := a.backend.Close(); err != nil {
		errs = append(errs, fmt.Errorf("backend: %w", err))
	}
	return errors.Join(errs...)
}
