package audio

import (
	"fmt"

	"github.com/at-ishikawa/lessonforge/internal/config"
)

const (
	StorageTypeLocal = "local"
	StorageTypeHTTP  = "http"
)

// NewStorage builds the configured Storage.
func NewStorage(cfg config.AudioStorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal, "":
		return NewLocalStorage(cfg.Directory, cfg.PublicBaseURL), nil
	case StorageTypeHTTP:
		return NewHTTPStorage(cfg.Endpoint, cfg.Bucket, cfg.PublicBaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported audio storage type: %s", cfg.Type)
	}
}
