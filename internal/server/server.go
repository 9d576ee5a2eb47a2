// Package server exposes lesson generation over a JSON REST API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/at-ishikawa/lessonforge/internal/config"
	"github.com/at-ishikawa/lessonforge/internal/lesson"
)

// Options configures routes beyond the API.
type Options struct {
	// AudioDirectory is served under /audio when audio is stored locally.
	AudioDirectory string
}

// New builds the echo instance with all API routes registered.
func New(cfg config.ServerConfig, generator Generator, lessons lesson.Repository, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				slog.Default().Error("request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			slog.Default().Info("request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
		MaxAge:       3600,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	jobs := NewJobHandler(generator)
	lessonHandler := NewLessonHandler(generator, lessons)

	api := e.Group("/api/v1")
	api.POST("/lessons/generate", lessonHandler.Generate)
	api.GET("/lessons/:id", lessonHandler.Get)
	api.GET("/jobs", jobs.List)
	api.GET("/jobs/:id", jobs.Get)

	if opts.AudioDirectory != "" {
		e.Static("/audio", opts.AudioDirectory)
	}
	return e
}
