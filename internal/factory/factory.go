package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/gameapi-e2e/internal/client"
	"github.com/mcoot/gameapi-e2e/internal/config"
	"github.com/mcoot/gameapi-e2e/internal/dependencies/clock"
	"github.com/mcoot/gameapi-e2e/internal/dependencies/random"
	"github.com/mcoot/gameapi-e2e/internal/fixture"
	"github.com/mcoot/gameapi-e2e/internal/names"
	"github.com/mcoot/gameapi-e2e/internal/scenario"
	"github.com/mcoot/gameapi-e2e/internal/storage"
	"github.com/mcoot/gameapi-e2e/internal/storage/memory"
	redisstorage "github.com/mcoot/gameapi-e2e/internal/storage/redis"
)

// ErrNoBaseURL is returned when no backend URL is configured
var ErrNoBaseURL = errors.New("no backend URL configured (set GAMEAPI_BASE_URL or --server)")

// App contains all wired suite components
type App struct {
	Config *config.Config

	// Backend client
	API client.API

	// Fixture ledger
	Ledger storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	Names    *names.Generator
	Fixtures *fixture.Manager
	Logger   *slog.Logger
}

// New wires an App from configuration
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.BaseURL == "" {
		return nil, ErrNoBaseURL
	}

	store, err := NewLedger(cfg)
	if err != nil {
		return nil, err
	}

	api := client.New(cfg.BaseURL, client.Options{
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})

	return newWithDependencies(cfg, api, store, clock.New(), random.New(), logger), nil
}

// NewLedger opens the fixture ledger selected by cfg
func NewLedger(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Ledger {
	case "", config.LedgerMemory:
		return memory.New(), nil
	case config.LedgerRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.FixtureTTL = cfg.LedgerTTL
		store, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis ledger: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("invalid ledger %q: must be %q or %q", cfg.Ledger, config.LedgerMemory, config.LedgerRedis)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(cfg *config.Config, api client.API, store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &App{
		Config: cfg,
		API:    api,
		Ledger: store,
		Clock:  clk,
		Random: rnd,
		Names:  names.New(rnd, names.DefaultConfig()),
		Fixtures: fixture.NewManager(fixture.ManagerConfig{
			API:    api,
			Ledger: store,
			Clock:  clk,
			Logger: logger,
		}),
		Logger: logger,
	}
}

// Env builds the scenario environment from the App
func (a *App) Env() *scenario.Env {
	return &scenario.Env{
		Fixtures:        a.Fixtures,
		Names:           a.Names,
		Platform:        a.Config.Platform,
		InvalidPlatform: a.Config.InvalidPlatform,
		Version:         a.Config.Version,
		Region:          a.Config.Region,
	}
}

// Close releases the ledger connection
func (a *App) Close() error {
	return a.Ledger.Close()
}
