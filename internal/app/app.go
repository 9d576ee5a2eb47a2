// Package app wires configured components for the binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/at-ishikawa/lessonforge/internal/audio"
	"github.com/at-ishikawa/lessonforge/internal/config"
	"github.com/at-ishikawa/lessonforge/internal/database"
	"github.com/at-ishikawa/lessonforge/internal/inference"
	"github.com/at-ishikawa/lessonforge/internal/inference/openai"
	"github.com/at-ishikawa/lessonforge/internal/job"
	"github.com/at-ishikawa/lessonforge/internal/lesson"
	"github.com/at-ishikawa/lessonforge/internal/pipeline"
	"github.com/at-ishikawa/lessonforge/internal/script"
	"github.com/at-ishikawa/lessonforge/internal/show"
	"github.com/at-ishikawa/lessonforge/internal/subtitle"
)

// Components holds everything a binary needs. Close releases them in reverse order of creation.
type Components struct {
	DB           *sqlx.DB
	Jobs         job.Store
	Scripts      *script.Service
	Lessons      *lesson.DBRepository
	Exporter     *lesson.Exporter
	Orchestrator *pipeline.Orchestrator

	// AudioDirectory is set when audio is stored on the local filesystem.
	AudioDirectory string

	closers []func() error
}

// New opens the database, applies the schema when migrate is set, and builds the pipeline.
func New(ctx context.Context, cfg *config.Config, migrate bool) (*Components, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	c := &Components{DB: db}
	c.closers = append(c.closers, db.Close)

	if migrate {
		if err := database.Migrate(ctx, db); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("database.Migrate() > %w", err)
		}
	}

	var cache script.Cache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		c.closers = append(c.closers, client.Close)
		cache = script.NewRedisCache(client, cfg.Redis.ScriptTTL)
	}

	c.Jobs = job.NewDBStore(db)
	c.Lessons = lesson.NewDBRepository(db)
	c.Exporter = lesson.NewExporter(cfg.Templates.LessonTemplate, cfg.Outputs.LessonDirectory)
	c.Scripts = script.NewService(
		script.NewDBStore(db),
		cache,
		subtitle.NewOpenSubtitlesFetcher(cfg.OpenSubtitles),
		cfg.Pipeline.DefaultLanguage,
	)

	if cfg.OpenAI.APIKey == "" {
		slog.Default().Warn("OPENAI_API_KEY is not set, lesson generation will fail")
	}
	openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
	c.closers = append(c.closers, openaiClient.Close)

	storage, err := audio.NewStorage(cfg.Audio.Storage)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	switch s := storage.(type) {
	case *audio.LocalStorage:
		c.AudioDirectory = s.Directory()
	case *audio.HTTPStorage:
		c.closers = append(c.closers, s.Close)
	}

	audioPipeline := audio.NewPipeline(
		audio.NewOpenAISynthesizer(cfg.OpenAI),
		audio.NewFFmpegTranscoder(cfg.Audio.FFmpegPath, cfg.Audio.Bitrate),
		storage,
		audio.PipelineOptions{
			Workers:      cfg.Audio.Workers,
			Timeout:      cfg.Audio.Timeout,
			MaxKeyLength: cfg.Audio.MaxKeyLength,
		},
	)

	c.Orchestrator = pipeline.NewOrchestrator(pipeline.Dependencies{
		Jobs:            c.Jobs,
		Resolver:        show.NewTMDBResolver(cfg.TMDB),
		Scripts:         c.Scripts,
		Extractor:       openaiClient,
		Exercises:       openaiClient,
		Audio:           audioPipeline,
		Lessons:         c.Lessons,
		DefaultLanguage: cfg.Pipeline.DefaultLanguage,
	})
	return c, nil
}

func (c *Components) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
