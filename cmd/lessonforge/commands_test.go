package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/lessonforge/internal/database"
	"github.com/at-ishikawa/lessonforge/internal/job"
	"github.com/at-ishikawa/lessonforge/internal/lesson"
	"github.com/at-ishikawa/lessonforge/internal/testutil"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// seed stores fixtures directly in the database the commands will open.
func seed(t *testing.T, fn func(ctx context.Context, jobs *job.DBStore, lessons *lesson.DBRepository)) {
	t.Helper()
	cfg := testutil.LoadTestConfig(t, configFile)
	db, err := database.Open(cfg.Database)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db))
	fn(ctx, job.NewDBStore(db), lesson.NewDBRepository(db))
}

func TestGenerateCommand_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no show or external id", args: []string{"generate", "--season", "1", "--episode", "1"}},
		{name: "missing season", args: []string{"generate", "--external-id", "tt0959621", "--episode", "1"}},
		{name: "missing episode", args: []string{"generate", "--show-id", "1396", "--season", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTestConfig(t)

			_, err := executeCommand(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestStatusCommand(t *testing.T) {
	useTestConfig(t)
	j := job.New(testNow)
	seed(t, func(ctx context.Context, jobs *job.DBStore, _ *lesson.DBRepository) {
		require.NoError(t, jobs.Create(ctx, j))
	})

	got, err := executeCommand(t, "status", j.ID)
	require.NoError(t, err)
	assert.Contains(t, got, j.ID)
	assert.Contains(t, got, string(job.StatusPending))
	assert.Contains(t, got, "Progress: 0%")

	_, err = executeCommand(t, "status", "missing")
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestJobsCommand(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		useTestConfig(t)

		got, err := executeCommand(t, "jobs")
		require.NoError(t, err)
		assert.Contains(t, got, "No jobs found")
	})

	t.Run("lists jobs", func(t *testing.T) {
		useTestConfig(t)
		first := job.New(testNow)
		second := job.New(testNow.Add(time.Minute))
		seed(t, func(ctx context.Context, jobs *job.DBStore, _ *lesson.DBRepository) {
			require.NoError(t, jobs.Create(ctx, first))
			require.NoError(t, jobs.Create(ctx, second))
		})

		got, err := executeCommand(t, "jobs", "--limit", "1")
		require.NoError(t, err)
		assert.Contains(t, got, second.ID)
		assert.NotContains(t, got, first.ID)
	})

	t.Run("rejects non-positive limit", func(t *testing.T) {
		useTestConfig(t)

		_, err := executeCommand(t, "jobs", "--limit", "0")
		assert.Error(t, err)
	})
}

func TestScriptShowCommand(t *testing.T) {
	useTestConfig(t)
	seed(t, func(ctx context.Context, _ *job.DBStore, _ *lesson.DBRepository) {})

	_, err := executeCommand(t, "script", "show", "--external-id", "tt0959621", "--season", "1", "--episode", "1")
	assert.Error(t, err)

	_, err = executeCommand(t, "script", "show", "--external-id", "tt0959621", "--season", "0", "--episode", "1")
	assert.Error(t, err)
}

func TestLessonsAndExportCommands(t *testing.T) {
	tmpDir := useTestConfig(t)
	var saved lesson.Lesson
	seed(t, func(ctx context.Context, _ *job.DBStore, lessons *lesson.DBRepository) {
		var err error
		saved, err = lessons.Save(ctx, lesson.Lesson{
			Source: lesson.Source{ExternalID: "tt0959621", Season: 1, Episode: 1, Language: "en", Title: "Pilot"},
			Vocabulary: []lesson.Vocabulary{
				{Term: "diagnosis", Definition: "identification of an illness"},
			},
			Exercises: []lesson.Exercise{
				{Type: lesson.ExerciseTranslation, Question: "Translate", Answer: "answer", Points: 3},
			},
			CreatedAt: testNow,
		})
		require.NoError(t, err)
	})

	got, err := executeCommand(t, "lessons")
	require.NoError(t, err)
	assert.Contains(t, got, saved.ID)
	assert.Contains(t, got, "tt0959621 S01E01")

	outputDir := filepath.Join(tmpDir, "exports")
	got, err = executeCommand(t, "export", saved.ID, "--format", "json", "--output-dir", outputDir)
	require.NoError(t, err)
	path := strings.TrimSpace(strings.TrimPrefix(got, "Exported lesson to "))
	assert.Equal(t, outputDir, filepath.Dir(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var exported lesson.Lesson
	require.NoError(t, json.Unmarshal(content, &exported))
	assert.Equal(t, saved.ID, exported.ID)
	assert.Equal(t, "diagnosis", exported.Vocabulary[0].Term)

	_, err = executeCommand(t, "export", saved.ID, "--format", "docx")
	assert.Error(t, err)

	_, err = executeCommand(t, "export", "missing")
	assert.ErrorIs(t, err, lesson.ErrNotFound)
}

func TestRenderTable(t *testing.T) {
	got := renderTable([]string{"ID", "Progress"}, [][]string{{"a", "50%"}, {"b"}}, []columnAlignment{alignLeft, alignRight})
	assert.Contains(t, got, "ID")
	assert.Contains(t, got, "50%")
	assert.Equal(t, "", renderTable(nil, nil, nil))
}
