// Package audio synthesizes, transcodes and uploads pronunciation audio for lesson items.
package audio

import "context"

//go:generate mockgen -source=audio.go -destination=../mocks/audio/mock_audio.go -package=mock_audio

// Synthesizer turns text into raw speech audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Transcoder converts raw speech audio to the distributed format.
type Transcoder interface {
	Transcode(ctx context.Context, raw []byte) ([]byte, error)
}

// Storage uploads audio and returns its public URL.
type Storage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

const ContentTypeMP3 = "audio/mpeg"

// Kind namespaces storage keys so items of different kinds never collide.
type Kind string

const (
	KindVocabulary Kind = "vocab"
	KindExpression Kind = "expressions"
)
