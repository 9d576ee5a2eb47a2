// Package lesson defines the generated lesson aggregate, its business rules, persistence and exports.
package lesson

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("lesson not found")

// Vocabulary is one extracted vocabulary term. AudioURL stays empty when no audio could be produced.
type Vocabulary struct {
	Term            string `json:"term" yaml:"term"`
	Definition      string `json:"definition" yaml:"definition"`
	PartOfSpeech    string `json:"part_of_speech,omitempty" yaml:"part_of_speech,omitempty"`
	ExampleSentence string `json:"example_sentence,omitempty" yaml:"example_sentence,omitempty"`
	Difficulty      string `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	AudioURL        string `json:"audio_url,omitempty" yaml:"audio_url,omitempty"`
}

type Grammar struct {
	Title       string   `json:"title" yaml:"title"`
	Explanation string   `json:"explanation" yaml:"explanation"`
	Structure   string   `json:"structure,omitempty" yaml:"structure,omitempty"`
	Examples    []string `json:"examples,omitempty" yaml:"examples,omitempty"`
	Level       string   `json:"level,omitempty" yaml:"level,omitempty"`
}

type Expression struct {
	Phrase   string `json:"phrase" yaml:"phrase"`
	Meaning  string `json:"meaning" yaml:"meaning"`
	Context  string `json:"context,omitempty" yaml:"context,omitempty"`
	Usage    string `json:"usage,omitempty" yaml:"usage,omitempty"`
	AudioURL string `json:"audio_url,omitempty" yaml:"audio_url,omitempty"`
}

type ExerciseType string

const (
	ExerciseMultipleChoice ExerciseType = "multiple_choice"
	ExerciseFillInBlank    ExerciseType = "fill_in_blank"
	ExerciseMatching       ExerciseType = "matching"
	ExerciseTranslation    ExerciseType = "translation"
)

type Exercise struct {
	Type        ExerciseType `json:"type" yaml:"type"`
	Question    string       `json:"question" yaml:"question"`
	Options     []string     `json:"options,omitempty" yaml:"options,omitempty"`
	Answer      string       `json:"answer" yaml:"answer"`
	Explanation string       `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Points      int          `json:"points" yaml:"points"`
}

// Content is the extracted material a lesson is assembled from.
type Content struct {
	Vocabulary  []Vocabulary
	Grammar     []Grammar
	Expressions []Expression
	Exercises   []Exercise
}

// Source identifies the episode a lesson was generated from.
type Source struct {
	ShowID     string `json:"show_id,omitempty" yaml:"show_id,omitempty"`
	ExternalID string `json:"external_id" yaml:"external_id"`
	Season     int    `json:"season" yaml:"season"`
	Episode    int    `json:"episode" yaml:"episode"`
	Language   string `json:"language" yaml:"language"`
	Title      string `json:"title,omitempty" yaml:"title,omitempty"`
	Genre      string `json:"genre,omitempty" yaml:"genre,omitempty"`
}

// Lesson is assembled once and not modified afterwards.
type Lesson struct {
	ID          string       `json:"id,omitempty" yaml:"id,omitempty"`
	Source      Source       `json:"source" yaml:"source"`
	Vocabulary  []Vocabulary `json:"vocabulary" yaml:"vocabulary"`
	Grammar     []Grammar    `json:"grammar" yaml:"grammar"`
	Expressions []Expression `json:"expressions" yaml:"expressions"`
	Exercises   []Exercise   `json:"exercises" yaml:"exercises"`
	CreatedAt   time.Time    `json:"created_at" yaml:"created_at"`
}

// TotalPoints sums the points of all exercises.
func (l Lesson) TotalPoints() int {
	total := 0
	for _, e := range l.Exercises {
		total += e.Points
	}
	return total
}

// IsHighQuality reports whether the lesson exceeds the richer content thresholds.
// It is informational and never blocks a lesson.
func (l Lesson) IsHighQuality() bool {
	return len(l.Vocabulary) >= HighQualityVocabulary &&
		len(l.Grammar) >= HighQualityGrammar &&
		len(l.Expressions) >= HighQualityExpressions &&
		len(l.Exercises) >= HighQualityExercises
}
