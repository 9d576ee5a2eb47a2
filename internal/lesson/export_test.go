package lesson

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFormat_Set(t *testing.T) {
	tests := []struct {
		value   string
		want    Format
		wantErr bool
	}{
		{value: "markdown", want: FormatMarkdown},
		{value: "md", want: FormatMarkdown},
		{value: "PDF", want: FormatPDF},
		{value: "yaml", want: FormatYAML},
		{value: "json", want: FormatJSON},
		{value: "docx", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var f Format
			err := f.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
			assert.Equal(t, string(tt.want), f.String())
			assert.Equal(t, "format", f.Type())
		})
	}
}

func TestExporter_Export(t *testing.T) {
	l := newTestLesson()
	l.ID = "lesson-1"

	tests := []struct {
		format   Format
		wantFile string
		validate func(t *testing.T, content []byte)
	}{
		{
			format:   FormatMarkdown,
			wantFile: "tt0959621-s01e01-en-lesson-1.md",
			validate: func(t *testing.T, content []byte) {
				assert.Contains(t, string(content), "# Pilot (S01E01)")
				assert.Contains(t, string(content), "- **term 0**: definition")
				assert.Contains(t, string(content), "    - Audio: https://cdn.example.com/vocab/term-0.mp3")
			},
		},
		{
			format:   FormatYAML,
			wantFile: "tt0959621-s01e01-en-lesson-1.yml",
			validate: func(t *testing.T, content []byte) {
				var got Lesson
				require.NoError(t, yaml.Unmarshal(content, &got))
				assert.Equal(t, l.Source, got.Source)
				assert.Len(t, got.Vocabulary, len(l.Vocabulary))
			},
		},
		{
			format:   FormatJSON,
			wantFile: "tt0959621-s01e01-en-lesson-1.json",
			validate: func(t *testing.T, content []byte) {
				var got Lesson
				require.NoError(t, json.Unmarshal(content, &got))
				assert.Equal(t, l.Exercises, got.Exercises)
			},
		},
		{
			format:   FormatPDF,
			wantFile: "tt0959621-s01e01-en-lesson-1.pdf",
			validate: func(t *testing.T, content []byte) {
				assert.NotEmpty(t, content)
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			outputDir := filepath.Join(t.TempDir(), "lessons")
			path, err := NewExporter("", outputDir).Export(l, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFile, filepath.Base(path))

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			tt.validate(t, content)
		})
	}
}

func TestExporter_Export_UnsupportedFormat(t *testing.T) {
	_, err := NewExporter("", t.TempDir()).Export(newTestLesson(), Format("docx"))
	assert.Error(t, err)
}
