// Package show resolves catalog show ids to the external episode ids used by subtitle providers.
package show

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/lessonforge/internal/config"
)

//go:generate mockgen -source=resolver.go -destination=../mocks/show/mock_resolver.go -package=mock_show

var ErrNotFound = errors.New("external id not found")

// Resolver maps a show episode to its external (IMDb) id.
type Resolver interface {
	ResolveExternalID(ctx context.Context, showID string, season, episode int) (string, error)
}

// TMDBResolver implements Resolver with the TMDB v3 API.
type TMDBResolver struct {
	client *resty.Client
}

func NewTMDBResolver(cfg config.TMDBConfig) *TMDBResolver {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetQueryParam("api_key", cfg.APIKey).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		AddRetryCondition(func(res *resty.Response, err error) bool {
			return err != nil || res.StatusCode() == http.StatusTooManyRequests || res.StatusCode() >= http.StatusInternalServerError
		})
	return &TMDBResolver{client: client}
}

type externalIDsResponse struct {
	ID     int64  `json:"id"`
	IMDbID string `json:"imdb_id"`
	TVDBID int64  `json:"tvdb_id"`
}

func (r *TMDBResolver) ResolveExternalID(ctx context.Context, showID string, season, episode int) (string, error) {
	var result externalIDsResponse
	res, err := r.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"showID":  showID,
			"season":  fmt.Sprint(season),
			"episode": fmt.Sprint(episode),
		}).
		SetResult(&result).
		Get("/tv/{showID}/season/{season}/episode/{episode}/external_ids")
	if err != nil {
		return "", fmt.Errorf("request external ids: %w", err)
	}
	if res.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("show %s season %d episode %d: %w", showID, season, episode, ErrNotFound)
	}
	if res.IsError() {
		return "", fmt.Errorf("request external ids: status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	if result.IMDbID == "" {
		return "", fmt.Errorf("show %s season %d episode %d has no IMDb id: %w", showID, season, episode, ErrNotFound)
	}
	return result.IMDbID, nil
}
