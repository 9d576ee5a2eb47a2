package assets

import (
	_ "embed"
	"fmt"
	"io"
	"text/template"
	"time"
)

const lessonTemplateName = "lesson.md.go.tmpl"

//go:embed templates/lesson.md.go.tmpl
var fallbackLessonTemplate string

// LessonTemplate is the data passed to lesson markdown templates
type LessonTemplate struct {
	Title       string
	ExternalID  string
	Season      int
	Episode     int
	Language    string
	Genre       string
	CreatedAt   time.Time
	TotalPoints int
	HighQuality bool
	Vocabulary  []LessonVocabulary
	Grammar     []LessonGrammar
	Expressions []LessonExpression
	Exercises   []LessonExercise
}

type LessonVocabulary struct {
	Term            string
	Definition      string
	PartOfSpeech    string
	ExampleSentence string
	Difficulty      string
	AudioURL        string
}

type LessonGrammar struct {
	Title       string
	Explanation string
	Structure   string
	Examples    []string
	Level       string
}

type LessonExpression struct {
	Phrase   string
	Meaning  string
	Context  string
	Usage    string
	AudioURL string
}

type LessonExercise struct {
	Type        string
	Question    string
	Options     []string
	Answer      string
	Explanation string
	Points      int
}

// ParseLessonTemplate parses templatePath, falling back to the embedded template when it is missing or invalid.
func ParseLessonTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, lessonTemplateName, fallbackLessonTemplate)
}

func WriteLesson(output io.Writer, templatePath string, templateData LessonTemplate) error {
	tmpl, err := ParseLessonTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
