package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/at-ishikawa/lessonforge/internal/subtitle"
)

// Service implements fetch-or-store over the TTL cache, the permanent store and the subtitle fetcher.
type Service struct {
	store           Store
	cache           Cache
	fetcher         subtitle.Fetcher
	defaultLanguage string
	group           singleflight.Group
	now             func() time.Time
}

// NewService creates a Service. cache may be nil when no TTL cache is configured.
func NewService(store Store, cache Cache, fetcher subtitle.Fetcher, defaultLanguage string) *Service {
	return &Service{
		store:           store,
		cache:           cache,
		fetcher:         fetcher,
		defaultLanguage: defaultLanguage,
		now:             time.Now,
	}
}

// Fetch returns the parsed script for key, downloading and storing it on the first request.
// It returns an error wrapping ErrNotFound when no subtitles exist for the episode.
func (s *Service) Fetch(ctx context.Context, key Key) (string, error) {
	key = key.normalize(s.defaultLanguage)
	if key.ExternalID == "" {
		return "", fmt.Errorf("fetch script: external id is required")
	}

	if s.cache != nil {
		text, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			slog.Default().Warn("script cache lookup failed", "key", key.String(), "error", err)
		} else if ok {
			slog.Default().Debug("script cache hit", "key", key.String())
			return text, nil
		}
	}

	// Concurrent requests for one key share a single download
	v, err, shared := s.group.Do(key.String(), func() (interface{}, error) {
		return s.fetchOrStore(ctx, key)
	})
	if err != nil {
		return "", err
	}
	if shared {
		slog.Default().Debug("script fetch shared with a concurrent request", "key", key.String())
	}
	text := v.(string)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, text); err != nil {
			slog.Default().Warn("script cache write failed", "key", key.String(), "error", err)
		}
	}
	return text, nil
}

func (s *Service) fetchOrStore(ctx context.Context, key Key) (string, error) {
	stored, err := s.store.Get(ctx, key)
	if err == nil {
		slog.Default().Debug("script found in store", "key", key.String())
		return stored.ParsedText, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("load script %s: %w", key, err)
	}

	raw, err := s.fetcher.Fetch(ctx, key.ExternalID, key.Season, key.Episode, key.Language)
	if err != nil {
		if errors.Is(err, subtitle.ErrNotFound) {
			return "", fmt.Errorf("no %s subtitles available for %s season %d episode %d: %w",
				key.Language, key.ExternalID, key.Season, key.Episode, ErrNotFound)
		}
		return "", fmt.Errorf("download subtitles for %s: %w", key, err)
	}

	parsed := subtitle.Paragraphs(raw)
	if parsed == "" {
		return "", fmt.Errorf("subtitles for %s contain no dialogue: %w", key, ErrNotFound)
	}

	stored, err = s.store.Save(ctx, CachedScript{
		Key:          key,
		RawContent:   raw,
		ParsedText:   parsed,
		DownloadedAt: s.now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("store script %s: %w", key, err)
	}
	slog.Default().Info("script downloaded and stored", "key", key.String(), "length", len(stored.ParsedText))
	return stored.ParsedText, nil
}

// Lookup returns the stored script without downloading it.
func (s *Service) Lookup(ctx context.Context, key Key) (CachedScript, error) {
	return s.store.Get(ctx, key.normalize(s.defaultLanguage))
}
