package lesson

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembler_Assemble(t *testing.T) {
	source := Source{ExternalID: "tt0959621", Season: 1, Episode: 1, Language: "en", Genre: "drama"}
	fixedNow := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		content         Content
		wantErr         bool
		wantErrContains []string
		wantNotContains []string
		wantHighQuality bool
	}{
		{
			name:    "exactly the minimums",
			content: newContent(10, 3, 5, 10),
		},
		{
			name:            "high quality thresholds",
			content:         newContent(15, 4, 6, 12),
			wantHighQuality: true,
		},
		{
			name:            "one short vocabulary",
			content:         newContent(9, 3, 5, 10),
			wantErr:         true,
			wantErrContains: []string{"vocabulary", "got 9", "10"},
			wantNotContains: []string{"grammar", "expressions", "exercises"},
		},
		{
			name:    "every category deficient is reported together",
			content: newContent(2, 1, 0, 4),
			wantErr: true,
			wantErrContains: []string{
				"vocabulary: got 2, need at least 10",
				"grammar points: got 1, need at least 3",
				"expressions: got 0, need at least 5",
				"exercises: got 4, need at least 10",
			},
		},
		{
			name:            "empty content",
			content:         Content{},
			wantErr:         true,
			wantErrContains: []string{"vocabulary", "grammar", "expressions", "exercises"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAssembler()
			a.now = func() time.Time { return fixedNow }

			got, err := a.Assemble(source, tt.content)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInsufficientContent)
				for _, want := range tt.wantErrContains {
					assert.Contains(t, err.Error(), want)
				}
				for _, notWant := range tt.wantNotContains {
					assert.NotContains(t, err.Error(), notWant)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, source, got.Source)
			assert.Equal(t, fixedNow, got.CreatedAt)
			assert.Len(t, got.Vocabulary, len(tt.content.Vocabulary))
			assert.Len(t, got.Exercises, len(tt.content.Exercises))
			assert.Equal(t, tt.wantHighQuality, got.IsHighQuality())
		})
	}
}

func TestAssembler_Assemble_CopiesContent(t *testing.T) {
	content := newContent(10, 3, 5, 10)
	got, err := NewAssembler().Assemble(Source{ExternalID: "tt1"}, content)
	require.NoError(t, err)

	content.Vocabulary[0].Term = "changed"
	assert.Equal(t, "term 0", got.Vocabulary[0].Term)
}

func TestLesson_TotalPoints(t *testing.T) {
	tests := []struct {
		name      string
		exercises []Exercise
		want      int
	}{
		{name: "no exercises", want: 0},
		{
			name: "sums points",
			exercises: []Exercise{
				{Type: ExerciseMultipleChoice, Points: 1},
				{Type: ExerciseMatching, Points: 2},
				{Type: ExerciseTranslation, Points: 3},
			},
			want: 6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lesson{Exercises: tt.exercises}.TotalPoints())
		})
	}
}

func TestLesson_IsHighQuality(t *testing.T) {
	tests := []struct {
		name    string
		content Content
		want    bool
	}{
		{name: "minimum lesson", content: newContent(10, 3, 5, 10), want: false},
		{name: "all thresholds met", content: newContent(15, 4, 6, 12), want: true},
		{name: "one category below threshold", content: newContent(15, 4, 5, 12), want: false},
		{name: "well above thresholds", content: newContent(30, 8, 10, 20), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Lesson{
				Vocabulary:  tt.content.Vocabulary,
				Grammar:     tt.content.Grammar,
				Expressions: tt.content.Expressions,
				Exercises:   tt.content.Exercises,
			}
			assert.Equal(t, tt.want, l.IsHighQuality())
		})
	}
}
