package audio

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/lessonforge/internal/config"
)

func TestLocalStorage_Upload(t *testing.T) {
	dir := t.TempDir()
	storage := NewLocalStorage(dir, "http://localhost:8080/audio/")

	url, err := storage.Upload(context.Background(), "vocab/diagnosis.mp3", []byte("mp3"), ContentTypeMP3)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/audio/vocab/diagnosis.mp3", url)

	content, err := os.ReadFile(filepath.Join(dir, "vocab", "diagnosis.mp3"))
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), content)

	_, err = storage.Upload(context.Background(), "../escape.mp3", []byte("mp3"), ContentTypeMP3)
	assert.Error(t, err)
}

func TestHTTPStorage_Upload(t *testing.T) {
	tests := []struct {
		name      string
		statuses  []int
		wantErr   bool
		wantCalls int32
		wantURL   string
	}{
		{
			name:      "uploads object",
			statuses:  []int{http.StatusOK},
			wantCalls: 1,
			wantURL:   "https://cdn.example.com/vocab/diagnosis.mp3",
		},
		{
			name:      "retries server errors",
			statuses:  []int{http.StatusServiceUnavailable, http.StatusOK},
			wantCalls: 2,
			wantURL:   "https://cdn.example.com/vocab/diagnosis.mp3",
		},
		{
			name:      "does not retry client errors",
			statuses:  []int{http.StatusForbidden},
			wantErr:   true,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/lessons/vocab/diagnosis.mp3", r.URL.Path)
				assert.Equal(t, ContentTypeMP3, r.Header.Get("Content-Type"))
				body, _ := io.ReadAll(r.Body)
				assert.Equal(t, "mp3-bytes", string(body))

				status := tt.statuses[len(tt.statuses)-1]
				if int(n) <= len(tt.statuses) {
					status = tt.statuses[n-1]
				}
				w.WriteHeader(status)
			}))
			defer server.Close()

			storage := NewHTTPStorage(server.URL, "lessons", "https://cdn.example.com/")
			defer storage.Close()

			url, err := storage.Upload(context.Background(), "vocab/diagnosis.mp3", []byte("mp3-bytes"), ContentTypeMP3)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantURL, url)
			}
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestNewStorage(t *testing.T) {
	local, err := NewStorage(config.AudioStorageConfig{Type: StorageTypeLocal, Directory: t.TempDir(), PublicBaseURL: "http://x"})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, local)

	remote, err := NewStorage(config.AudioStorageConfig{Type: StorageTypeHTTP, Endpoint: "http://storage", PublicBaseURL: "http://x"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPStorage{}, remote)

	_, err = NewStorage(config.AudioStorageConfig{Type: "s3"})
	assert.Error(t, err)
}
