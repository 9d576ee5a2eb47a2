package script

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow       = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	testKey       = Key{ExternalID: "tt0959621", Season: 1, Episode: 1, Language: "en"}
	scriptColumns = []string{"external_id", "season", "episode", "language", "raw_content", "parsed_text", "downloaded_at", "expires_at"}
)

func newMockStore(t *testing.T) (*DBStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDBStore(sqlx.NewDb(db, "mysql")), mock
}

func TestDBStore_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      CachedScript
		wantErr   error
	}{
		{
			name: "returns stored script",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM cached_scripts WHERE external_id = \\? AND season = \\? AND episode = \\? AND language = \\?").
					WithArgs("tt0959621", 1, 1, "en").
					WillReturnRows(sqlmock.NewRows(scriptColumns).
						AddRow("tt0959621", 1, 1, "en", "raw", "Hello there", testNow, nil))
			},
			want: CachedScript{Key: testKey, RawContent: "raw", ParsedText: "Hello there", DownloadedAt: testNow},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM cached_scripts").
					WillReturnRows(sqlmock.NewRows(scriptColumns))
			},
			wantErr: ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.setupMock(mock)

			got, err := store.Get(context.Background(), testKey)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBStore_Save(t *testing.T) {
	script := CachedScript{Key: testKey, RawContent: "raw", ParsedText: "Hello there", DownloadedAt: testNow}
	insert := "INSERT INTO cached_scripts \\(external_id, season, episode, language, raw_content, parsed_text, downloaded_at, expires_at\\) VALUES"

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      CachedScript
		wantErr   bool
	}{
		{
			name: "inserts new script",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(insert).
					WithArgs("tt0959621", 1, 1, "en", "raw", "Hello there", testNow, nil).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			want: script,
		},
		{
			name: "keeps the first write on duplicate key",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(insert).
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
				mock.ExpectQuery("SELECT (.+) FROM cached_scripts").
					WithArgs("tt0959621", 1, 1, "en").
					WillReturnRows(sqlmock.NewRows(scriptColumns).
						AddRow("tt0959621", 1, 1, "en", "first raw", "First text", testNow.Add(-time.Minute), nil))
			},
			want: CachedScript{Key: testKey, RawContent: "first raw", ParsedText: "First text", DownloadedAt: testNow.Add(-time.Minute)},
		},
		{
			name: "other insert errors propagate",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(insert).WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.setupMock(mock)

			got, err := store.Save(context.Background(), script)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
