package show

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/lessonforge/internal/config"
)

func TestTMDBResolver_ResolveExternalID(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr error
		errMsg  string
	}{
		{
			name:   "returns imdb id",
			status: http.StatusOK,
			body:   `{"id":62085,"imdb_id":"tt0959621","tvdb_id":349232}`,
			want:   "tt0959621",
		},
		{
			name:    "unknown episode",
			status:  http.StatusNotFound,
			body:    `{"status_code":34,"status_message":"The resource you requested could not be found."}`,
			wantErr: ErrNotFound,
		},
		{
			name:    "episode without imdb id",
			status:  http.StatusOK,
			body:    `{"id":62085,"imdb_id":null}`,
			wantErr: ErrNotFound,
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"status_code":7}`,
			errMsg: "status code: 401",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/tv/1396/season/1/episode/2/external_ids", r.URL.Path)
				assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			resolver := NewTMDBResolver(config.TMDBConfig{APIKey: "test-key", BaseURL: server.URL})
			got, err := resolver.ResolveExternalID(context.Background(), "1396", 1, 2)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				assert.ErrorContains(t, err, tt.errMsg)
				assert.NotErrorIs(t, err, ErrNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
