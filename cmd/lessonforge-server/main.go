package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/lessonforge/internal/app"
	"github.com/at-ishikawa/lessonforge/internal/bootstrap"
	"github.com/at-ishikawa/lessonforge/internal/config"
	"github.com/at-ishikawa/lessonforge/internal/server"
)

func main() {
	_ = godotenv.Load()
	setupLogger(os.Getenv("LESSONFORGE_DEBUG") != "")

	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	components, err := app.New(ctx, cfg, true)
	if err != nil {
		return fmt.Errorf("app.New() > %w", err)
	}

	srv := newHTTPServer(cfg, components)

	lifecycle := bootstrap.New(cfg.Server.ShutdownTimeout)
	// Hooks run in reverse: stop accepting requests, drain running jobs, then release connections.
	lifecycle.AddShutdownHook("components", func(ctx context.Context) error {
		return components.Close()
	})
	lifecycle.AddShutdownHook("generation jobs", components.Orchestrator.Wait)
	lifecycle.AddShutdownHook("http server", srv.Shutdown)

	return lifecycle.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func newHTTPServer(cfg *config.Config, components *app.Components) *http.Server {
	e := server.New(cfg.Server, components.Orchestrator, components.Lessons, server.Options{
		AudioDirectory: components.AudioDirectory,
	})
	return &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Server.Port),
		Handler: h2c.NewHandler(e, &http2.Server{}),
	}
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("LESSONFORGE_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})))
}
