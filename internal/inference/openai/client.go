package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/lessonforge/internal/lesson"
)

// maxScriptRunes bounds the script excerpt sent in one prompt.
const maxScriptRunes = 24000

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(2 * time.Minute)

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Retry on JSON parsing errors as they might be due to incomplete responses
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// ExtractVocabulary implements the inference.ContentExtractor interface
func (client *Client) ExtractVocabulary(ctx context.Context, script string, genre string) ([]lesson.Vocabulary, error) {
	genreHint := "general television"
	if genre != "" {
		genreHint = genre
	}
	userMessage := fmt.Sprintf("Genre: %s\n\nScript:\n%s", genreHint, truncateScript(script))

	var decoded struct {
		Vocabulary []lesson.Vocabulary `json:"vocabulary"`
	}
	if err := client.completeWithRetry(ctx, "extractVocabulary", vocabularyPrompt, userMessage, &decoded); err != nil {
		return nil, err
	}
	return compactVocabulary(decoded.Vocabulary), nil
}

// ExtractGrammar implements the inference.ContentExtractor interface
func (client *Client) ExtractGrammar(ctx context.Context, script string) ([]lesson.Grammar, error) {
	var decoded struct {
		Grammar []lesson.Grammar `json:"grammar"`
	}
	if err := client.completeWithRetry(ctx, "extractGrammar", grammarPrompt, "Script:\n"+truncateScript(script), &decoded); err != nil {
		return nil, err
	}

	grammar := make([]lesson.Grammar, 0, len(decoded.Grammar))
	for _, g := range decoded.Grammar {
		if strings.TrimSpace(g.Title) == "" {
			continue
		}
		grammar = append(grammar, g)
	}
	return grammar, nil
}

// ExtractExpressions implements the inference.ContentExtractor interface
func (client *Client) ExtractExpressions(ctx context.Context, script string) ([]lesson.Expression, error) {
	var decoded struct {
		Expressions []lesson.Expression `json:"expressions"`
	}
	if err := client.completeWithRetry(ctx, "extractExpressions", expressionsPrompt, "Script:\n"+truncateScript(script), &decoded); err != nil {
		return nil, err
	}

	expressions := make([]lesson.Expression, 0, len(decoded.Expressions))
	for _, e := range decoded.Expressions {
		if strings.TrimSpace(e.Phrase) == "" {
			continue
		}
		e.AudioURL = ""
		expressions = append(expressions, e)
	}
	return expressions, nil
}

// GenerateExercises implements the inference.ExerciseGenerator interface
func (client *Client) GenerateExercises(
	ctx context.Context,
	vocabulary []lesson.Vocabulary,
	grammar []lesson.Grammar,
	expressions []lesson.Expression,
) ([]lesson.Exercise, error) {
	input, err := json.Marshal(map[string]interface{}{
		"vocabulary":  vocabulary,
		"grammar":     grammar,
		"expressions": expressions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal exercise input: %w", err)
	}

	var decoded struct {
		Exercises []lesson.Exercise `json:"exercises"`
	}
	if err := client.completeWithRetry(ctx, "generateExercises", exercisesPrompt, string(input), &decoded); err != nil {
		return nil, err
	}

	exercises := make([]lesson.Exercise, 0, len(decoded.Exercises))
	for _, e := range decoded.Exercises {
		if strings.TrimSpace(e.Question) == "" {
			continue
		}
		if e.Points <= 0 {
			e.Points = defaultExercisePoints(e.Type)
		}
		exercises = append(exercises, e)
	}
	return exercises, nil
}

func (client *Client) completeWithRetry(ctx context.Context, operation, systemPrompt, userMessage string, out interface{}) error {
	return retry.Do(
		func() error {
			err := client.complete(ctx, operation, systemPrompt, userMessage, out)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				slog.Default().Info("Retrying OpenAI API call", "operation", operation, "error", err)
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

func (client *Client) complete(ctx context.Context, operation, systemPrompt, userMessage string, out interface{}) error {
	requestBody := ChatCompletionRequest{
		Model:          client.model,
		Temperature:    0.3,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: userMessage},
		},
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := stripCodeFence(responseBody.Choices[0].Message.Content)
	if content == "" {
		return fmt.Errorf("empty response content: %s", response.String())
	}

	slog.Default().Debug(operation+" response",
		"model", client.model,
		"totalTokens", responseBody.Usage.TotalTokens,
		"response", content,
	)

	if err := json.NewDecoder(strings.NewReader(content)).Decode(out); err != nil {
		return fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	return nil
}

// stripCodeFence removes a markdown code fence some models wrap JSON answers in.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

func truncateScript(script string) string {
	runes := []rune(script)
	if len(runes) <= maxScriptRunes {
		return script
	}
	return string(runes[:maxScriptRunes])
}

func compactVocabulary(items []lesson.Vocabulary) []lesson.Vocabulary {
	seen := make(map[string]bool, len(items))
	result := make([]lesson.Vocabulary, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item.Term))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		item.Term = strings.TrimSpace(item.Term)
		item.AudioURL = ""
		result = append(result, item)
	}
	return result
}

func defaultExercisePoints(t lesson.ExerciseType) int {
	switch t {
	case lesson.ExerciseTranslation:
		return 3
	case lesson.ExerciseMatching:
		return 2
	default:
		return 1
	}
}
