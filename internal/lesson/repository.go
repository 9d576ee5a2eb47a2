package lesson

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/lessonforge/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/lesson/mock_repository.go -package=mock_lesson

// Repository persists assembled lessons.
type Repository interface {
	// Save stores the lesson with all its items atomically and returns it with its assigned ID.
	Save(ctx context.Context, l Lesson) (Lesson, error)
	FindByID(ctx context.Context, id string) (Lesson, error)
	List(ctx context.Context, limit int) ([]Summary, error)
}

// Summary is the list view of a stored lesson.
type Summary struct {
	ID          string    `json:"id" yaml:"id"`
	Source      Source    `json:"source" yaml:"source"`
	TotalPoints int       `json:"total_points" yaml:"total_points"`
	HighQuality bool      `json:"high_quality" yaml:"high_quality"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

const (
	itemKindVocabulary = "vocabulary"
	itemKindGrammar    = "grammar"
	itemKindExpression = "expression"
	itemKindExercise   = "exercise"
)

const selectLessonColumns = "SELECT id, show_id, external_id, season, episode, language, title, genre, total_points, high_quality, created_at FROM lessons"

var lessonItemColumns = []string{"lesson_id", "kind", "position", "payload", "audio_url"}

type lessonRow struct {
	ID          string    `db:"id"`
	ShowID      string    `db:"show_id"`
	ExternalID  string    `db:"external_id"`
	Season      int       `db:"season"`
	Episode     int       `db:"episode"`
	Language    string    `db:"language"`
	Title       string    `db:"title"`
	Genre       string    `db:"genre"`
	TotalPoints int       `db:"total_points"`
	HighQuality bool      `db:"high_quality"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r lessonRow) source() Source {
	return Source{
		ShowID:     r.ShowID,
		ExternalID: r.ExternalID,
		Season:     r.Season,
		Episode:    r.Episode,
		Language:   r.Language,
		Title:      r.Title,
		Genre:      r.Genre,
	}
}

type lessonItemRow struct {
	Kind     string `db:"kind"`
	Position int    `db:"position"`
	Payload  string `db:"payload"`
	AudioURL string `db:"audio_url"`
}

// DBRepository implements Repository on the lessons and lesson_items tables.
type DBRepository struct {
	db    *sqlx.DB
	newID func() string
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{
		db:    db,
		newID: uuid.NewString,
	}
}

func (r *DBRepository) Save(ctx context.Context, l Lesson) (Lesson, error) {
	if l.ID == "" {
		l.ID = r.newID()
	}
	args, rowCount, err := itemArgs(l)
	if err != nil {
		return Lesson{}, err
	}

	err = database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO lessons (id, show_id, external_id, season, episode, language, title, genre, total_points, high_quality, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			l.ID, l.Source.ShowID, l.Source.ExternalID, l.Source.Season, l.Source.Episode, l.Source.Language,
			l.Source.Title, l.Source.Genre, l.TotalPoints(), l.IsHighQuality(), l.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert lesson %s: %w", l.ID, err)
		}
		if rowCount == 0 {
			return nil
		}
		if _, err := tx.ExecContext(ctx, database.BuildMultiRowInsert("lesson_items", lessonItemColumns, rowCount), args...); err != nil {
			return fmt.Errorf("insert lesson items of %s: %w", l.ID, err)
		}
		return nil
	})
	if err != nil {
		return Lesson{}, err
	}
	return l, nil
}

func itemArgs(l Lesson) ([]any, int, error) {
	var args []any
	rowCount := 0
	add := func(kind string, position int, item any, audioURL string) error {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("json.Marshal(%s %d) > %w", kind, position, err)
		}
		args = append(args, l.ID, kind, position, string(payload), audioURL)
		rowCount++
		return nil
	}

	for i, v := range l.Vocabulary {
		if err := add(itemKindVocabulary, i, v, v.AudioURL); err != nil {
			return nil, 0, err
		}
	}
	for i, g := range l.Grammar {
		if err := add(itemKindGrammar, i, g, ""); err != nil {
			return nil, 0, err
		}
	}
	for i, e := range l.Expressions {
		if err := add(itemKindExpression, i, e, e.AudioURL); err != nil {
			return nil, 0, err
		}
	}
	for i, e := range l.Exercises {
		if err := add(itemKindExercise, i, e, ""); err != nil {
			return nil, 0, err
		}
	}
	return args, rowCount, nil
}

func (r *DBRepository) FindByID(ctx context.Context, id string) (Lesson, error) {
	var row lessonRow
	if err := r.db.GetContext(ctx, &row, selectLessonColumns+" WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lesson{}, fmt.Errorf("lesson %s: %w", id, ErrNotFound)
		}
		return Lesson{}, fmt.Errorf("select lesson %s: %w", id, err)
	}

	var items []lessonItemRow
	if err := r.db.SelectContext(ctx, &items,
		"SELECT kind, position, payload, audio_url FROM lesson_items WHERE lesson_id = ? ORDER BY kind, position", id,
	); err != nil {
		return Lesson{}, fmt.Errorf("select lesson items of %s: %w", id, err)
	}

	l := Lesson{
		ID:        row.ID,
		Source:    row.source(),
		CreatedAt: row.CreatedAt,
	}
	for _, item := range items {
		if err := l.addItem(item); err != nil {
			return Lesson{}, fmt.Errorf("decode lesson %s: %w", id, err)
		}
	}
	return l, nil
}

func (l *Lesson) addItem(item lessonItemRow) error {
	payload := []byte(item.Payload)
	switch item.Kind {
	case itemKindVocabulary:
		var v Vocabulary
		if err := json.Unmarshal(payload, &v); err != nil {
			return fmt.Errorf("json.Unmarshal(%s) > %w", item.Payload, err)
		}
		v.AudioURL = item.AudioURL
		l.Vocabulary = append(l.Vocabulary, v)
	case itemKindGrammar:
		var g Grammar
		if err := json.Unmarshal(payload, &g); err != nil {
			return fmt.Errorf("json.Unmarshal(%s) > %w", item.Payload, err)
		}
		l.Grammar = append(l.Grammar, g)
	case itemKindExpression:
		var e Expression
		if err := json.Unmarshal(payload, &e); err != nil {
			return fmt.Errorf("json.Unmarshal(%s) > %w", item.Payload, err)
		}
		e.AudioURL = item.AudioURL
		l.Expressions = append(l.Expressions, e)
	case itemKindExercise:
		var e Exercise
		if err := json.Unmarshal(payload, &e); err != nil {
			return fmt.Errorf("json.Unmarshal(%s) > %w", item.Payload, err)
		}
		l.Exercises = append(l.Exercises, e)
	default:
		return fmt.Errorf("unknown lesson item kind %q", item.Kind)
	}
	return nil
}

func (r *DBRepository) List(ctx context.Context, limit int) ([]Summary, error) {
	var rows []lessonRow
	if err := r.db.SelectContext(ctx, &rows, selectLessonColumns+" ORDER BY created_at DESC LIMIT ?", limit); err != nil {
		return nil, fmt.Errorf("select lessons: %w", err)
	}
	summaries := make([]Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, Summary{
			ID:          row.ID,
			Source:      row.source(),
			TotalPoints: row.TotalPoints,
			HighQuality: row.HighQuality,
			CreatedAt:   row.CreatedAt,
		})
	}
	return summaries, nil
}
