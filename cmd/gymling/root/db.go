package root

import (
	"context"
	"database/sql"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"gymling/internal/config"
	"gymling/internal/engine"
	"gymling/internal/storage"
)

func loadConfig() (*config.Config, error) {
	return config.Load(flagConfig)
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, func(), error) {
	explicit := flagDB
	if explicit == "" {
		explicit = cfg.Database.Path
	}
	path, err := storage.ResolveDBPath(explicit)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

func newSimulator(cfg *config.Config) *engine.Simulator {
	seed := cfg.Battle.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return engine.NewSimulator(rand.New(rand.NewPCG(seed, seed>>1)), engine.SimulatorOptions{
		EquipmentEffects: cfg.Battle.EquipmentEffects,
		MaxRounds:        cfg.Battle.MaxRounds,
	})
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, cleanup, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := engine.NewService(db,
		engine.WithLogger(newLogger(cfg)),
		engine.WithSimulator(newSimulator(cfg)),
		engine.WithEnergyCost(cfg.Battle.EnergyCost),
	)
	return svc, cleanup, nil
}
