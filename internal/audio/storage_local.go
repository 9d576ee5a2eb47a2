package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes audio under a directory that is served at publicBaseURL.
type LocalStorage struct {
	directory     string
	publicBaseURL string
}

func NewLocalStorage(directory, publicBaseURL string) *LocalStorage {
	return &LocalStorage{
		directory:     directory,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *LocalStorage) Upload(ctx context.Context, key string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if key == "" || strings.Contains(key, "..") || filepath.IsAbs(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}

	path := filepath.Join(s.directory, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return s.publicBaseURL + "/" + key, nil
}

// Directory is the root served by the HTTP server for local audio.
func (s *LocalStorage) Directory() string {
	return s.directory
}
