package backend

import (
	"context"
	"fmt"
	"log/slog"

	"condo/internal/core"
	"condo/internal/memory"
	"condo/internal/ports"
	"condo/internal/seed"
	"condo/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend opens the configured store and seeds it with the unit set
// when it holds no units yet.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	units, err := seed.Load(config.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config, units)
	case MemoryBackend:
		return f.createMemoryBackend(units), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config, units []core.UnitInput) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	seeded, err := seedIfEmpty(ctx, repo, units)
	if err != nil {
		repo.Close()
		return nil, err
	}

	f.logger.Info("Initialized SQLite backend",
		"dsn", config.SQLiteDSN,
		"seeded_units", seeded)

	return &Result{Store: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createMemoryBackend(units []core.UnitInput) *Result {
	store := memory.New(units, nil)

	f.logger.Info("Initialized memory backend", "seeded_units", len(units))

	return &Result{Store: store}
}

// seedIfEmpty adds units when the store has none and reports how many it added.
func seedIfEmpty(ctx context.Context, store ports.UnitStore, units []core.UnitInput) (int, error) {
	existing, err := store.ListUnits(ctx)
	if err != nil {
		return 0, fmt.Errorf("list units: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for _, u := range units {
		if _, err := store.AddUnit(ctx, u); err != nil {
			return 0, fmt.Errorf("seed unit %q: %w", u.Name, err)
		}
	}
	return len(units), nil
}
