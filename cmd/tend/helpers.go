package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/tend/internal/config"
	"github.com/Veraticus/tend/internal/service"
	"github.com/Veraticus/tend/internal/storage"
)

// app bundles the resolved configuration with an open, migrated store.
type app struct {
	cfg   *config.Config
	store service.Storage
}

// openApp loads configuration and opens the database, creating its directory if needed.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return &app{cfg: cfg, store: store}, nil
}

// initStorage opens the database at dbPath and runs migrations.
func initStorage(ctx context.Context, dbPath string) (service.Storage, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

func (a *app) now() time.Time {
	return a.cfg.Now()
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
