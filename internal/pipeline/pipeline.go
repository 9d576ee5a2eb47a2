// Package pipeline runs lesson generation jobs in the background.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/at-ishikawa/lessonforge/internal/audio"
	"github.com/at-ishikawa/lessonforge/internal/script"
)

//go:generate mockgen -source=pipeline.go -destination=../mocks/pipeline/mock_pipeline.go -package=mock_pipeline

// ScriptSource returns the parsed dialogue of an episode.
type ScriptSource interface {
	Fetch(ctx context.Context, key script.Key) (string, error)
}

// AudioProcessor voices a batch of items, one result per item in input order.
type AudioProcessor interface {
	Process(ctx context.Context, items []audio.Item) []audio.Result
}

var ErrInvalidRequest = errors.New("invalid generation request")

// Request asks for a lesson of one episode.
// ExternalID may be left empty when ShowID can be resolved to it.
type Request struct {
	ShowID     string `json:"show_id"`
	ExternalID string `json:"external_id"`
	Season     int    `json:"season"`
	Episode    int    `json:"episode"`
	Language   string `json:"language"`
	Genre      string `json:"genre"`
	Title      string `json:"title"`
}

func (r Request) Validate() error {
	var problems []string
	if strings.TrimSpace(r.ShowID) == "" && strings.TrimSpace(r.ExternalID) == "" {
		problems = append(problems, "show_id or external_id is required")
	}
	if r.Season < 1 {
		problems = append(problems, "season must be 1 or greater")
	}
	if r.Episode < 1 {
		problems = append(problems, "episode must be 1 or greater")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(problems, ", "))
	}
	return nil
}
