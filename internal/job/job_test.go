package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func processingJob(t *testing.T) Job {
	t.Helper()
	j, err := New(testNow).MarkProcessing("Fetching script")
	require.NoError(t, err)
	return j
}

func TestNew(t *testing.T) {
	j := New(testNow)
	assert.NotEmpty(t, j.ID)
	assert.Equal(t, StatusPending, j.Status)
	assert.Equal(t, 0, j.Progress)
	assert.Equal(t, testNow, j.CreatedAt)
	assert.Nil(t, j.CompletedAt)
	assert.NotEqual(t, j.ID, New(testNow).ID)
}

func TestJob_MarkProcessing(t *testing.T) {
	j, err := New(testNow).MarkProcessing("Fetching script")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, j.Status)
	assert.Equal(t, "Fetching script", j.CurrentStep)

	_, err = j.MarkProcessing("again")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestJob_UpdateProgress(t *testing.T) {
	tests := []struct {
		name     string
		job      func(t *testing.T) Job
		progress int
		wantErr  error
	}{
		{name: "lower bound", job: processingJob, progress: 0},
		{name: "upper bound", job: processingJob, progress: 100},
		{name: "middle", job: processingJob, progress: 42},
		{name: "negative", job: processingJob, progress: -1, wantErr: ErrInvalidArgument},
		{name: "over one hundred", job: processingJob, progress: 101, wantErr: ErrInvalidArgument},
		{
			name:     "pending job",
			job:      func(t *testing.T) Job { return New(testNow) },
			progress: 10,
			wantErr:  ErrInvalidTransition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.job(t)
			got, err := before.UpdateProgress(tt.progress, "Extracting vocabulary")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.progress, got.Progress)
			assert.Equal(t, "Extracting vocabulary", got.CurrentStep)
			assert.GreaterOrEqual(t, got.Progress, MinProgress)
			assert.LessOrEqual(t, got.Progress, MaxProgress)
		})
	}
}

func TestJob_UpdateProgress_AcceptsLowerValue(t *testing.T) {
	j, err := processingJob(t).UpdateProgress(60, "Generating exercises")
	require.NoError(t, err)
	j, err = j.UpdateProgress(40, "Retrying grammar")
	require.NoError(t, err)
	assert.Equal(t, 40, j.Progress)
}

func TestJob_MarkCompleted(t *testing.T) {
	j, err := processingJob(t).MarkCompleted("lesson-1", testNow)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, j.Status)
	assert.Equal(t, 100, j.Progress)
	assert.Equal(t, StepCompleted, j.CurrentStep)
	assert.Equal(t, "lesson-1", j.ResultID)
	require.NotNil(t, j.CompletedAt)
	assert.Equal(t, testNow, *j.CompletedAt)
	assert.Empty(t, j.ErrorMessage)

	_, err = processingJob(t).MarkCompleted("", testNow)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(testNow).MarkCompleted("lesson-1", testNow)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestJob_MarkFailed(t *testing.T) {
	j, err := processingJob(t).UpdateProgress(25, "Extracting vocabulary")
	require.NoError(t, err)
	j, err = j.MarkFailed("no subtitles available", testNow)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, j.Status)
	assert.Equal(t, "no subtitles available", j.ErrorMessage)
	assert.Equal(t, 25, j.Progress)
	assert.Empty(t, j.ResultID)
	require.NotNil(t, j.CompletedAt)

	pending, err := New(testNow).MarkFailed("", testNow)
	require.NoError(t, err)
	assert.Equal(t, "unknown error", pending.ErrorMessage)
}

func TestJob_TerminalIsImmutable(t *testing.T) {
	completed, err := processingJob(t).MarkCompleted("lesson-1", testNow)
	require.NoError(t, err)
	failed, err := processingJob(t).MarkFailed("boom", testNow)
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	for _, terminal := range []Job{completed, failed} {
		t.Run(string(terminal.Status), func(t *testing.T) {
			ops := map[string]func(Job) (Job, error){
				"mark processing": func(j Job) (Job, error) { return j.MarkProcessing("again") },
				"update progress": func(j Job) (Job, error) { return j.UpdateProgress(10, "again") },
				"mark completed":  func(j Job) (Job, error) { return j.MarkCompleted("lesson-2", later) },
				"mark failed":     func(j Job) (Job, error) { return j.MarkFailed("again", later) },
			}
			for name, op := range ops {
				got, err := op(terminal)
				assert.ErrorIs(t, err, ErrTerminal, name)
				assert.Equal(t, terminal, got, name)
			}
		})
	}
}
