package main

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/lessonforge/internal/app"
	"github.com/at-ishikawa/lessonforge/internal/config"
	"github.com/at-ishikawa/lessonforge/internal/database"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newComponents builds the pipeline from the loaded config.
// The SQLite schema is applied on every run since a local database file may be new.
func newComponents(ctx context.Context, override func(cfg *config.Config)) (*app.Components, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if override != nil {
		override(cfg)
	}
	components, err := app.New(ctx, cfg, cfg.Database.Driver == database.DriverSQLite)
	if err != nil {
		return nil, fmt.Errorf("app.New() > %w", err)
	}
	return components, nil
}
