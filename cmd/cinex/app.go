package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mmcdole/cinex/internal/adapter"
	"github.com/mmcdole/cinex/internal/favorites"
	"github.com/mmcdole/cinex/internal/omdb"
	"github.com/mmcdole/cinex/internal/search"
	"github.com/mmcdole/cinex/internal/store"
)

// app holds the wired services shared by every command
type app struct {
	cfg       *adapter.Config
	logger    *slog.Logger
	slots     *store.SlotStore
	client    *omdb.Client
	favorites *favorites.Store
	search    *search.Controller

	logCloser io.Closer
}

// openApp loads configuration and wires the services. cfgFile may be
// empty to use the default config locations.
func openApp(cfgFile string) (*app, error) {
	var (
		cfg *adapter.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = adapter.LoadConfigFile(cfgFile)
	} else {
		cfg, err = adapter.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, logCloser, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
		logCloser = io.NopCloser(nil)
	}
	slog.SetDefault(logger)

	slots, err := store.NewSlotStore(cfg.Storage.Path)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("failed to open favorites store: %w", err)
	}

	client := omdb.NewClient(cfg.Backend.API(), omdb.Options{
		Timeout:           cfg.Backend.Timeout,
		RequestsPerSecond: cfg.Backend.RequestsPerSecond,
		Burst:             cfg.Backend.Burst,
		DetailTTL:         cfg.Backend.DetailCacheTTL,
	}, logger)

	favs := favorites.NewStore(slots, logger)
	favs.Initialize()

	logger.Info("starting cinex", "version", Version, "backend", cfg.Backend.API(), "favorites", favs.Count())

	return &app{
		cfg:       cfg,
		logger:    logger,
		slots:     slots,
		client:    client,
		favorites: favs,
		search:    search.NewController(client, logger),
		logCloser: logCloser,
	}, nil
}

// Close releases the store and the log file
func (a *app) Close() error {
	a.logger.Info("shutting down")
	err := a.slots.Close()
	a.logCloser.Close()
	return err
}
