package lesson

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	MinVocabulary  = 10
	MinGrammar     = 3
	MinExpressions = 5
	MinExercises   = 10

	HighQualityVocabulary  = 15
	HighQualityGrammar     = 4
	HighQualityExpressions = 6
	HighQualityExercises   = 12
)

var ErrInsufficientContent = errors.New("insufficient lesson content")

// Assembler validates extracted content and builds lessons.
type Assembler struct {
	now func() time.Time
}

func NewAssembler() *Assembler {
	return &Assembler{now: time.Now}
}

// Assemble builds a lesson when every content category meets its minimum.
// All deficient categories are reported together in one error wrapping ErrInsufficientContent.
func (a *Assembler) Assemble(source Source, content Content) (Lesson, error) {
	minimums := []struct {
		name string
		got  int
		min  int
	}{
		{name: "vocabulary", got: len(content.Vocabulary), min: MinVocabulary},
		{name: "grammar points", got: len(content.Grammar), min: MinGrammar},
		{name: "expressions", got: len(content.Expressions), min: MinExpressions},
		{name: "exercises", got: len(content.Exercises), min: MinExercises},
	}
	var deficiencies []string
	for _, m := range minimums {
		if m.got < m.min {
			deficiencies = append(deficiencies, fmt.Sprintf("%s: got %d, need at least %d", m.name, m.got, m.min))
		}
	}
	if len(deficiencies) > 0 {
		return Lesson{}, fmt.Errorf("%w: %s", ErrInsufficientContent, strings.Join(deficiencies, "; "))
	}

	l := Lesson{
		Source:      source,
		Vocabulary:  append([]Vocabulary(nil), content.Vocabulary...),
		Grammar:     append([]Grammar(nil), content.Grammar...),
		Expressions: append([]Expression(nil), content.Expressions...),
		Exercises:   append([]Exercise(nil), content.Exercises...),
		CreatedAt:   a.now().UTC(),
	}
	slog.Default().Info("lesson assembled",
		"externalID", source.ExternalID,
		"season", source.Season,
		"episode", source.Episode,
		"vocabulary", len(l.Vocabulary),
		"grammar", len(l.Grammar),
		"expressions", len(l.Expressions),
		"exercises", len(l.Exercises),
		"totalPoints", l.TotalPoints(),
		"highQuality", l.IsHighQuality(),
	)
	return l, nil
}
