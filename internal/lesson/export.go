package lesson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/lessonforge/internal/assets"
	"github.com/at-ishikawa/lessonforge/internal/pdf"
)

// Format is an export format. It implements pflag.Value so it can be used as a flag directly.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
)

var _ pflag.Value = (*Format)(nil)

var formatExtensions = map[Format]string{
	FormatMarkdown: ".md",
	FormatPDF:      ".pdf",
	FormatYAML:     ".yml",
	FormatJSON:     ".json",
}

func (f *Format) String() string {
	return string(*f)
}

func (f *Format) Set(value string) error {
	format := Format(strings.ToLower(value))
	if format == "md" {
		format = FormatMarkdown
	}
	if _, ok := formatExtensions[format]; !ok {
		return fmt.Errorf("unsupported format %q, must be one of markdown, pdf, yaml, json", value)
	}
	*f = format
	return nil
}

func (f *Format) Type() string {
	return "format"
}

// Exporter writes lessons to files.
type Exporter struct {
	templatePath string
	outputDir    string
}

func NewExporter(templatePath, outputDir string) *Exporter {
	return &Exporter{templatePath: templatePath, outputDir: outputDir}
}

// Markdown renders the lesson with the configured template.
func (e *Exporter) Markdown(l Lesson) ([]byte, error) {
	var buf bytes.Buffer
	if err := assets.WriteLesson(&buf, e.templatePath, templateData(l)); err != nil {
		return nil, fmt.Errorf("assets.WriteLesson() > %w", err)
	}
	return buf.Bytes(), nil
}

// Export writes the lesson in the given format and returns the written path.
func (e *Exporter) Export(l Lesson, format Format) (string, error) {
	ext, ok := formatExtensions[format]
	if !ok {
		return "", fmt.Errorf("unsupported format %q", format)
	}
	path := filepath.Join(e.outputDir, FileName(l)+ext)

	var content []byte
	var err error
	switch format {
	case FormatMarkdown:
		content, err = e.Markdown(l)
	case FormatPDF:
		markdown, mdErr := e.Markdown(l)
		if mdErr != nil {
			return "", mdErr
		}
		return pdf.Render(markdown, path)
	case FormatYAML:
		content, err = yaml.Marshal(l)
	case FormatJSON:
		content, err = json.MarshalIndent(l, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("encode lesson %s as %s: %w", l.ID, format, err)
	}

	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", e.outputDir, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}

// FileName is the base name used for exports of a lesson.
func FileName(l Lesson) string {
	name := fmt.Sprintf("%s-s%02de%02d-%s", l.Source.ExternalID, l.Source.Season, l.Source.Episode, l.Source.Language)
	if l.ID != "" {
		name += "-" + l.ID
	}
	return name
}

func templateData(l Lesson) assets.LessonTemplate {
	data := assets.LessonTemplate{
		Title:       l.Source.Title,
		ExternalID:  l.Source.ExternalID,
		Season:      l.Source.Season,
		Episode:     l.Source.Episode,
		Language:    l.Source.Language,
		Genre:       l.Source.Genre,
		CreatedAt:   l.CreatedAt,
		TotalPoints: l.TotalPoints(),
		HighQuality: l.IsHighQuality(),
	}
	for _, v := range l.Vocabulary {
		data.Vocabulary = append(data.Vocabulary, assets.LessonVocabulary{
			Term:            v.Term,
			Definition:      v.Definition,
			PartOfSpeech:    v.PartOfSpeech,
			ExampleSentence: v.ExampleSentence,
			Difficulty:      v.Difficulty,
			AudioURL:        v.AudioURL,
		})
	}
	for _, g := range l.Grammar {
		data.Grammar = append(data.Grammar, assets.LessonGrammar{
			Title:       g.Title,
			Explanation: g.Explanation,
			Structure:   g.Structure,
			Examples:    g.Examples,
			Level:       g.Level,
		})
	}
	for _, e := range l.Expressions {
		data.Expressions = append(data.Expressions, assets.LessonExpression{
			Phrase:   e.Phrase,
			Meaning:  e.Meaning,
			Context:  e.Context,
			Usage:    e.Usage,
			AudioURL: e.AudioURL,
		})
	}
	for _, e := range l.Exercises {
		data.Exercises = append(data.Exercises, assets.LessonExercise{
			Type:        string(e.Type),
			Question:    e.Question,
			Options:     e.Options,
			Answer:      e.Answer,
			Explanation: e.Explanation,
			Points:      e.Points,
		})
	}
	return data
}
