package script

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/lessonforge/internal/database"
)

//go:generate mockgen -source=store.go -destination=../mocks/script/mock_store.go -package=mock_script

// Store is the permanent script store.
type Store interface {
	Get(ctx context.Context, key Key) (CachedScript, error)
	// Save stores the script unless one already exists for its key, and returns the stored entry.
	Save(ctx context.Context, s CachedScript) (CachedScript, error)
}

type scriptRow struct {
	ExternalID   string       `db:"external_id"`
	Season       int          `db:"season"`
	Episode      int          `db:"episode"`
	Language     string       `db:"language"`
	RawContent   string       `db:"raw_content"`
	ParsedText   string       `db:"parsed_text"`
	DownloadedAt time.Time    `db:"downloaded_at"`
	ExpiresAt    sql.NullTime `db:"expires_at"`
}

func (r scriptRow) toScript() CachedScript {
	s := CachedScript{
		Key: Key{
			ExternalID: r.ExternalID,
			Season:     r.Season,
			Episode:    r.Episode,
			Language:   r.Language,
		},
		RawContent:   r.RawContent,
		ParsedText:   r.ParsedText,
		DownloadedAt: r.DownloadedAt,
	}
	if r.ExpiresAt.Valid {
		expiresAt := r.ExpiresAt.Time
		s.ExpiresAt = &expiresAt
	}
	return s
}

// DBStore implements Store on the cached_scripts table.
type DBStore struct {
	db *sqlx.DB
}

func NewDBStore(db *sqlx.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Get(ctx context.Context, key Key) (CachedScript, error) {
	var row scriptRow
	err := s.db.GetContext(ctx, &row,
		"SELECT external_id, season, episode, language, raw_content, parsed_text, downloaded_at, expires_at FROM cached_scripts WHERE external_id = ? AND season = ? AND episode = ? AND language = ?",
		key.ExternalID, key.Season, key.Episode, key.Language)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CachedScript{}, fmt.Errorf("script %s: %w", key, ErrNotFound)
		}
		return CachedScript{}, fmt.Errorf("select script %s: %w", key, err)
	}
	return row.toScript(), nil
}

// Save inserts the script. When a concurrent writer stored the same key first, its entry is kept and returned.
func (s *DBStore) Save(ctx context.Context, script CachedScript) (CachedScript, error) {
	var expiresAt sql.NullTime
	if script.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *script.ExpiresAt, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO cached_scripts (external_id, season, episode, language, raw_content, parsed_text, downloaded_at, expires_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		script.ExternalID, script.Season, script.Episode, script.Language,
		script.RawContent, script.ParsedText, script.DownloadedAt, expiresAt)
	if err == nil {
		return script, nil
	}
	if !database.IsDuplicateKey(err) {
		return CachedScript{}, fmt.Errorf("insert script %s: %w", script.Key, err)
	}

	slog.Default().Warn("script already stored, keeping the existing entry", "key", script.Key.String())
	existing, getErr := s.Get(ctx, script.Key)
	if getErr != nil {
		return CachedScript{}, fmt.Errorf("load existing script %s: %w", script.Key, getErr)
	}
	return existing, nil
}
