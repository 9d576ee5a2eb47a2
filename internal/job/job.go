// Package job implements the generation job state machine and its persistence.
package job

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

const (
	MinProgress = 0
	MaxProgress = 100

	StepQueued    = "Queued"
	StepCompleted = "Completed"
)

var (
	ErrNotFound          = errors.New("job not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidTransition = errors.New("invalid job transition")
	ErrTerminal          = errors.New("job is already finished")
	ErrConflict          = errors.New("job was modified concurrently")
)

// Job tracks one lesson generation request.
// Transition methods never mutate the receiver; they return the updated copy.
type Job struct {
	ID           string     `json:"id" yaml:"id"`
	Status       Status     `json:"status" yaml:"status"`
	Progress     int        `json:"progress" yaml:"progress"`
	CurrentStep  string     `json:"current_step" yaml:"current_step"`
	ErrorMessage string     `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	ResultID     string     `json:"result_id,omitempty" yaml:"result_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at" yaml:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// New returns a PENDING job with a fresh id.
func New(now time.Time) Job {
	return Job{
		ID:          uuid.NewString(),
		Status:      StatusPending,
		Progress:    MinProgress,
		CurrentStep: StepQueued,
		CreatedAt:   now.UTC(),
	}
}

func (j Job) IsTerminal() bool {
	return j.Status.IsTerminal()
}

// MarkProcessing moves a PENDING job to PROCESSING.
func (j Job) MarkProcessing(step string) (Job, error) {
	if j.IsTerminal() {
		return j, fmt.Errorf("mark job %s processing: %w", j.ID, ErrTerminal)
	}
	if j.Status != StatusPending {
		return j, fmt.Errorf("mark job %s processing from %s: %w", j.ID, j.Status, ErrInvalidTransition)
	}
	j.Status = StatusProcessing
	j.CurrentStep = step
	return j, nil
}

// UpdateProgress records the current step of a PROCESSING job.
// A lower value than the previous one is accepted.
func (j Job) UpdateProgress(progress int, step string) (Job, error) {
	if j.IsTerminal() {
		return j, fmt.Errorf("update progress of job %s: %w", j.ID, ErrTerminal)
	}
	if progress < MinProgress || progress > MaxProgress {
		return j, fmt.Errorf("progress %d must be between %d and %d: %w", progress, MinProgress, MaxProgress, ErrInvalidArgument)
	}
	if j.Status != StatusProcessing {
		return j, fmt.Errorf("update progress of job %s in %s: %w", j.ID, j.Status, ErrInvalidTransition)
	}
	j.Progress = progress
	j.CurrentStep = step
	return j, nil
}

// MarkCompleted finishes a PROCESSING job with the id of the produced lesson.
func (j Job) MarkCompleted(resultID string, now time.Time) (Job, error) {
	if j.IsTerminal() {
		return j, fmt.Errorf("complete job %s: %w", j.ID, ErrTerminal)
	}
	if resultID == "" {
		return j, fmt.Errorf("complete job %s without result id: %w", j.ID, ErrInvalidArgument)
	}
	if j.Status != StatusProcessing {
		return j, fmt.Errorf("complete job %s from %s: %w", j.ID, j.Status, ErrInvalidTransition)
	}
	completedAt := now.UTC()
	j.Status = StatusCompleted
	j.Progress = MaxProgress
	j.CurrentStep = StepCompleted
	j.ResultID = resultID
	j.CompletedAt = &completedAt
	return j, nil
}

// MarkFailed finishes a PENDING or PROCESSING job with an error message.
// Progress and the current step are kept so the caller can see where it stopped.
func (j Job) MarkFailed(message string, now time.Time) (Job, error) {
	if j.IsTerminal() {
		return j, fmt.Errorf("fail job %s: %w", j.ID, ErrTerminal)
	}
	if message == "" {
		message = "unknown error"
	}
	completedAt := now.UTC()
	j.Status = StatusFailed
	j.ErrorMessage = message
	j.CompletedAt = &completedAt
	return j, nil
}
