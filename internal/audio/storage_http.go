package audio

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

// HTTPStorage uploads objects with PUT requests to an object-store compatible endpoint.
type HTTPStorage struct {
	httpClient    *resty.Client
	bucket        string
	publicBaseURL string
	attempts      uint
}

func NewHTTPStorage(endpoint, bucket, publicBaseURL string) *HTTPStorage {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(endpoint, "/"))
	client.SetTimeout(time.Minute)

	return &HTTPStorage{
		httpClient:    client,
		bucket:        strings.Trim(bucket, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		attempts:      3,
	}
}

func (s *HTTPStorage) Close() error {
	return s.httpClient.Close()
}

func (s *HTTPStorage) objectPath(key string) string {
	if s.bucket == "" {
		return "/" + key
	}
	return "/" + s.bucket + "/" + key
}

func (s *HTTPStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	path := s.objectPath(key)
	err := retry.Do(
		func() error {
			response, err := s.httpClient.R().
				SetContext(ctx).
				SetHeader("Content-Type", contentType).
				SetBody(data).
				Put(path)
			if err != nil {
				return fmt.Errorf("httpClient.Put(%s) > %w", path, err)
			}
			if response.IsError() {
				err := fmt.Errorf("upload %s: response error %d: %s", path, response.StatusCode(), response.String())
				if response.StatusCode() < http.StatusInternalServerError && response.StatusCode() != http.StatusTooManyRequests {
					return retry.Unrecoverable(err)
				}
				slog.Default().Info("Retrying audio upload", "key", key, "status", response.StatusCode())
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.LastErrorOnly(true),
		retry.Delay(200*time.Millisecond),
	)
	if err != nil {
		return "", err
	}
	return s.publicBaseURL + "/" + key, nil
}
