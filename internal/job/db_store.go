package job

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/lessonforge/internal/database"
)

const selectJobColumns = "SELECT id, status, progress, current_step, error_message, result_id, created_at, completed_at FROM generation_jobs"

type jobRow struct {
	ID           string         `db:"id"`
	Status       string         `db:"status"`
	Progress     int            `db:"progress"`
	CurrentStep  string         `db:"current_step"`
	ErrorMessage sql.NullString `db:"error_message"`
	ResultID     sql.NullString `db:"result_id"`
	CreatedAt    time.Time      `db:"created_at"`
	CompletedAt  sql.NullTime   `db:"completed_at"`
}

func (r jobRow) toJob() Job {
	j := Job{
		ID:           r.ID,
		Status:       Status(r.Status),
		Progress:     r.Progress,
		CurrentStep:  r.CurrentStep,
		ErrorMessage: r.ErrorMessage.String,
		ResultID:     r.ResultID.String,
		CreatedAt:    r.CreatedAt,
	}
	if r.CompletedAt.Valid {
		completedAt := r.CompletedAt.Time
		j.CompletedAt = &completedAt
	}
	return j
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// DBStore implements Store on the generation_jobs table.
type DBStore struct {
	db *sqlx.DB
}

func NewDBStore(db *sqlx.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Create(ctx context.Context, j Job) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO generation_jobs (id, status, progress, current_step, error_message, result_id, created_at, completed_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		j.ID, string(j.Status), j.Progress, j.CurrentStep, nullString(j.ErrorMessage), nullString(j.ResultID), j.CreatedAt, nullTime(j.CompletedAt))
	if err != nil {
		return fmt.Errorf("insert job %s: %w", j.ID, err)
	}
	return nil
}

func (s *DBStore) Get(ctx context.Context, id string) (Job, error) {
	return getJob(ctx, s.db, id)
}

func getJob(ctx context.Context, q sqlx.QueryerContext, id string) (Job, error) {
	var row jobRow
	if err := sqlx.GetContext(ctx, q, &row, selectJobColumns+" WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return Job{}, fmt.Errorf("select job %s: %w", id, err)
	}
	return row.toJob(), nil
}

func (s *DBStore) List(ctx context.Context, limit int) ([]Job, error) {
	if limit < 1 {
		return nil, fmt.Errorf("list jobs with limit %d: %w", limit, ErrInvalidArgument)
	}
	var rows []jobRow
	if err := s.db.SelectContext(ctx, &rows, selectJobColumns+" ORDER BY created_at DESC LIMIT ?", limit); err != nil {
		return nil, fmt.Errorf("select jobs: %w", err)
	}
	jobs := make([]Job, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, row.toJob())
	}
	return jobs, nil
}

// Modify runs the read-modify-write in its own transaction.
// The UPDATE is guarded by the status that was read so a concurrent terminal transition is never overwritten.
func (s *DBStore) Modify(ctx context.Context, id string, fn func(Job) (Job, error)) (Job, error) {
	var updated Job
	err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := getJob(ctx, tx, id)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			"UPDATE generation_jobs SET status = ?, progress = ?, current_step = ?, error_message = ?, result_id = ?, completed_at = ? WHERE id = ? AND status = ?",
			string(next.Status), next.Progress, next.CurrentStep, nullString(next.ErrorMessage), nullString(next.ResultID), nullTime(next.CompletedAt),
			id, string(current.Status))
		if err != nil {
			return fmt.Errorf("update job %s: %w", id, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update job %s: %w", id, err)
		}
		if affected == 0 {
			return fmt.Errorf("update job %s: %w", id, ErrConflict)
		}
		updated = next
		return nil
	})
	if err != nil {
		return Job{}, err
	}
	return updated, nil
}
