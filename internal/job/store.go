package job

import "context"

//go:generate mockgen -source=store.go -destination=../mocks/job/mock_store.go -package=mock_job

// Store persists jobs.
type Store interface {
	Create(ctx context.Context, j Job) error
	Get(ctx context.Context, id string) (Job, error)
	// List returns at most limit jobs, the most recently created first.
	// A limit below 1 is rejected with ErrInvalidArgument.
	List(ctx context.Context, limit int) ([]Job, error)
	// Modify loads the job, applies fn and writes the result back as one atomic commit.
	// Nothing is written when fn returns an error.
	Modify(ctx context.Context, id string, fn func(Job) (Job, error)) (Job, error)
}
