// Package testutil provides shared test helpers for creating config files and database fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/lessonforge/internal/config"
	"github.com/at-ishikawa/lessonforge/internal/database"
)

// SampleSRT is a two-block subtitle file with markup the parser has to strip.
const SampleSRT = `1
00:00:01,000 --> 00:00:03,000
WALTER: Hello there [door closes]

2
00:00:04,000 --> 00:00:06,500
<i>We need to talk.</i>
♪ It's about the diagnosis. ♪
`

// SetupTestConfig creates a config file using SQLite and local audio storage under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"data", "audio", "lessons"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`database:
  driver: sqlite
  path: %s
audio:
  storage:
    type: local
    directory: %s
    public_base_url: http://localhost:8080/audio
outputs:
  lesson_directory: %s
`,
		filepath.Join(tmpDir, "data", "lessonforge.db"),
		filepath.Join(tmpDir, "audio"),
		filepath.Join(tmpDir, "lessons"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file with a fake OpenAI API key for tests
// that require API key validation to pass.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("openai:\n  api_key: fake-key-for-testing\n  model: gpt-4o-mini\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// LoadTestConfig loads the config written by SetupTestConfig.
func LoadTestConfig(t *testing.T, cfgPath string) *config.Config {
	t.Helper()
	loader, err := config.NewConfigLoader(cfgPath)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)
	return cfg
}

// NewSQLiteDB opens a migrated SQLite database in tmpDir that is closed when the test ends.
func NewSQLiteDB(t *testing.T, tmpDir string) *sqlx.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(tmpDir, "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}
