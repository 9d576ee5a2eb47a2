package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearSecretEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENSUBTITLES_API_KEY",
		"TMDB_API_KEY", "DB_PASSWORD", "REDIS_PASSWORD",
	} {
		t.Setenv(env, "")
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		env               map[string]string
		wantErr           bool
		wantErrorContains []string
		check             func(t *testing.T, cfg *Config)
	}{
		{
			name:          "empty config uses defaults",
			configContent: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORS.AllowedOrigins)
				assert.Equal(t, "sqlite", cfg.Database.Driver)
				assert.Equal(t, filepath.Join("data", "lessonforge.db"), cfg.Database.Path)
				assert.Equal(t, 30*24*time.Hour, cfg.Redis.ScriptTTL)
				assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
				assert.Equal(t, "tts-1", cfg.OpenAI.TTSModel)
				assert.Equal(t, 10, cfg.Audio.Workers)
				assert.Equal(t, 5*time.Minute, cfg.Audio.Timeout)
				assert.Equal(t, 100, cfg.Audio.MaxKeyLength)
				assert.Equal(t, "local", cfg.Audio.Storage.Type)
				assert.Equal(t, "en", cfg.Pipeline.DefaultLanguage)
			},
		},
		{
			name: "custom values override defaults",
			configContent: `server:
  port: 9090
database:
  driver: mysql
  host: db.example.com
  port: 3307
audio:
  workers: 4
  timeout: 90s
  storage:
    type: http
    endpoint: https://storage.example.com
    bucket: lessons
    public_base_url: https://cdn.example.com
redis:
  addr: localhost:6379
  script_ttl: 48h
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "mysql", cfg.Database.Driver)
				assert.Equal(t, "db.example.com", cfg.Database.Host)
				assert.Equal(t, 3307, cfg.Database.Port)
				assert.Equal(t, 4, cfg.Audio.Workers)
				assert.Equal(t, 90*time.Second, cfg.Audio.Timeout)
				assert.Equal(t, "http", cfg.Audio.Storage.Type)
				assert.Equal(t, "https://storage.example.com", cfg.Audio.Storage.Endpoint)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, 48*time.Hour, cfg.Redis.ScriptTTL)
			},
		},
		{
			name: "secrets come from environment variables",
			env: map[string]string{
				"OPENAI_API_KEY":        "sk-test",
				"OPENSUBTITLES_API_KEY": "os-test",
				"TMDB_API_KEY":          "tmdb-test",
				"DB_PASSWORD":           "secret",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
				assert.Equal(t, "os-test", cfg.OpenSubtitles.APIKey)
				assert.Equal(t, "tmdb-test", cfg.TMDB.APIKey)
				assert.Equal(t, "secret", cfg.Database.Password)
			},
		},
		{
			name: "too many audio workers",
			configContent: `audio:
  workers: 32
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "workers"},
		},
		{
			name: "unknown database driver",
			configContent: `database:
  driver: postgres
`,
			wantErr:           true,
			wantErrorContains: []string{"invalid configuration", "driver"},
		},
		{
			name: "missing lesson template file",
			configContent: `templates:
  lesson_template: /does/not/exist.md.go.tmpl
`,
			wantErr:           true,
			wantErrorContains: []string{"templates.lesson_template must be an existing and readable file"},
		},
		{
			name: "invalid YAML format",
			configContent: `server:
  port: 8080
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearSecretEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			configPath := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			tt.check(t, got)
		})
	}
}

func TestConfigLoader_Load_SearchesWorkingDirectory(t *testing.T) {
	clearSecretEnv(t)
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yml"), []byte("server:\n  port: 7070\n"), 0644))

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, os.Chdir(originalDir))
	}()
	require.NoError(t, os.Chdir(tempDir))

	loader, err := NewConfigLoader("")
	require.NoError(t, err)
	got, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, got.Server.Port)
}
