// Package progress commits job progress independently of the pipeline run that reports it.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/lessonforge/internal/job"
)

// Tracker writes every state change as its own commit through the job store.
// Writes detach from the caller's cancellation so a cancelled or failing run still records where it stopped.
type Tracker struct {
	store job.Store
	now   func() time.Time
}

func NewTracker(store job.Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// Start moves a pending job to PROCESSING.
func (t *Tracker) Start(ctx context.Context, jobID string, step string) error {
	return t.apply(ctx, jobID, "start", func(j job.Job) (job.Job, error) {
		return j.MarkProcessing(step)
	})
}

func (t *Tracker) Update(ctx context.Context, jobID string, progress int, step string) error {
	return t.apply(ctx, jobID, "update", func(j job.Job) (job.Job, error) {
		return j.UpdateProgress(progress, step)
	})
}

func (t *Tracker) Complete(ctx context.Context, jobID string, resultID string) error {
	return t.apply(ctx, jobID, "complete", func(j job.Job) (job.Job, error) {
		return j.MarkCompleted(resultID, t.now())
	})
}

func (t *Tracker) Fail(ctx context.Context, jobID string, message string) error {
	return t.apply(ctx, jobID, "fail", func(j job.Job) (job.Job, error) {
		return j.MarkFailed(message, t.now())
	})
}

func (t *Tracker) apply(ctx context.Context, jobID string, action string, fn func(job.Job) (job.Job, error)) error {
	updated, err := t.store.Modify(context.WithoutCancel(ctx), jobID, fn)
	if err != nil {
		return fmt.Errorf("%s job %s: %w", action, jobID, err)
	}
	slog.Default().Debug("job progress committed",
		"jobID", jobID,
		"status", updated.Status,
		"progress", updated.Progress,
		"step", updated.CurrentStep,
	)
	return nil
}
