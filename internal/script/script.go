// Package script caches parsed episode scripts so subtitles are downloaded once per episode and language.
package script

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound signals that no script exists for a key, either stored or downloadable.
var ErrNotFound = errors.New("script not found")

// Key identifies one episode script in one language.
type Key struct {
	ExternalID string `json:"external_id" yaml:"external_id"`
	Season     int    `json:"season" yaml:"season"`
	Episode    int    `json:"episode" yaml:"episode"`
	Language   string `json:"language" yaml:"language"`
}

func (k Key) normalize(defaultLanguage string) Key {
	k.ExternalID = strings.TrimSpace(k.ExternalID)
	k.Language = strings.ToLower(strings.TrimSpace(k.Language))
	if k.Language == "" {
		k.Language = defaultLanguage
	}
	return k
}

func (k Key) String() string {
	return fmt.Sprintf("%s/s%02de%02d/%s", k.ExternalID, k.Season, k.Episode, k.Language)
}

// CachedScript is a downloaded subtitle file with its parsed dialogue.
// A nil ExpiresAt means the entry never expires.
type CachedScript struct {
	Key
	RawContent   string     `json:"raw_content" yaml:"raw_content"`
	ParsedText   string     `json:"parsed_text" yaml:"parsed_text"`
	DownloadedAt time.Time  `json:"downloaded_at" yaml:"downloaded_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}
