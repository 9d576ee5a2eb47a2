package subtitle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/lessonforge/internal/config"
)

//go:generate mockgen -source=fetcher.go -destination=../mocks/subtitle/mock_fetcher.go -package=mock_subtitle

// ErrNotFound is returned when no subtitle exists for an episode in the requested language.
var ErrNotFound = errors.New("subtitles not found")

// Fetcher downloads the raw subtitle file of an episode.
type Fetcher interface {
	Fetch(ctx context.Context, externalID string, season, episode int, language string) (string, error)
}

// OpenSubtitlesFetcher implements Fetcher with the OpenSubtitles REST API.
type OpenSubtitlesFetcher struct {
	client *resty.Client
}

func NewOpenSubtitlesFetcher(cfg config.OpenSubtitlesConfig) *OpenSubtitlesFetcher {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Api-Key", cfg.APIKey).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json").
		SetTimeout(45 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		AddRetryCondition(func(res *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return res.StatusCode() == http.StatusTooManyRequests || res.StatusCode() >= http.StatusInternalServerError
		})
	return &OpenSubtitlesFetcher{client: client}
}

type searchResponse struct {
	Data []struct {
		ID         string `json:"id"`
		Attributes struct {
			Language      string `json:"language"`
			DownloadCount int    `json:"download_count"`
			Files         []struct {
				FileID int64 `json:"file_id"`
			} `json:"files"`
		} `json:"attributes"`
	} `json:"data"`
}

type downloadRequest struct {
	FileID    int64  `json:"file_id"`
	SubFormat string `json:"sub_format"`
}

type downloadResponse struct {
	Link      string `json:"link"`
	FileName  string `json:"file_name"`
	Remaining int    `json:"remaining"`
}

// Fetch searches the most downloaded subtitle of the episode and returns its SRT content.
func (f *OpenSubtitlesFetcher) Fetch(ctx context.Context, externalID string, season, episode int, language string) (string, error) {
	fileID, err := f.search(ctx, externalID, season, episode, language)
	if err != nil {
		return "", err
	}

	var download downloadResponse
	res, err := f.client.R().
		SetContext(ctx).
		SetBody(downloadRequest{FileID: fileID, SubFormat: "srt"}).
		SetResult(&download).
		Post("/download")
	if err != nil {
		return "", fmt.Errorf("request subtitle download link: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("request subtitle download link: status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	if download.Link == "" {
		return "", fmt.Errorf("download response for file %d has no link", fileID)
	}
	slog.Default().Debug("subtitle download link issued",
		"fileID", fileID,
		"fileName", download.FileName,
		"remaining", download.Remaining,
	)

	res, err = f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "*/*").
		Get(download.Link)
	if err != nil {
		return "", fmt.Errorf("download subtitle file %d: %w", fileID, err)
	}
	if res.IsError() {
		return "", fmt.Errorf("download subtitle file %d: status code: %d", fileID, res.StatusCode())
	}
	return string(res.Body()), nil
}

func (f *OpenSubtitlesFetcher) search(ctx context.Context, externalID string, season, episode int, language string) (int64, error) {
	params := map[string]string{
		"languages":       strings.ToLower(language),
		"type":            "episode",
		"order_by":        "download_count",
		"order_direction": "desc",
	}
	if id := imdbNumber(externalID); id != "" {
		params["parent_imdb_id"] = id
	} else {
		params["query"] = externalID
	}
	if season > 0 {
		params["season_number"] = strconv.Itoa(season)
	}
	if episode > 0 {
		params["episode_number"] = strconv.Itoa(episode)
	}

	var result searchResponse
	res, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&result).
		Get("/subtitles")
	if err != nil {
		return 0, fmt.Errorf("search subtitles: %w", err)
	}
	if res.StatusCode() == http.StatusNotFound {
		return 0, fmt.Errorf("%s S%02dE%02d (%s): %w", externalID, season, episode, language, ErrNotFound)
	}
	if res.IsError() {
		return 0, fmt.Errorf("search subtitles: status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}

	for _, entry := range result.Data {
		if len(entry.Attributes.Files) == 0 || entry.Attributes.Files[0].FileID == 0 {
			continue
		}
		return entry.Attributes.Files[0].FileID, nil
	}
	return 0, fmt.Errorf("%s S%02dE%02d (%s): %w", externalID, season, episode, language, ErrNotFound)
}

// imdbNumber returns the numeric part of an IMDb id such as tt0959621.
func imdbNumber(externalID string) string {
	value := strings.TrimPrefix(strings.TrimSpace(externalID), "tt")
	if value == "" {
		return ""
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return ""
	}
	return strconv.FormatInt(n, 10)
}
