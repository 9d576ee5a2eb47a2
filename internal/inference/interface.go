package inference

import (
	"context"

	"github.com/at-ishikawa/lessonforge/internal/lesson"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// ContentExtractor extracts study material from an episode script.
type ContentExtractor interface {
	ExtractVocabulary(ctx context.Context, script string, genre string) ([]lesson.Vocabulary, error)
	ExtractGrammar(ctx context.Context, script string) ([]lesson.Grammar, error)
	ExtractExpressions(ctx context.Context, script string) ([]lesson.Expression, error)
}

// ExerciseGenerator creates exercises from the extracted material.
type ExerciseGenerator interface {
	GenerateExercises(ctx context.Context, vocabulary []lesson.Vocabulary, grammar []lesson.Grammar, expressions []lesson.Expression) ([]lesson.Exercise, error)
}

const (
	DefaultMaxRetryAttempts = 3
)
