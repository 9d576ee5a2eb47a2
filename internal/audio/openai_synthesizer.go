package audio

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/at-ishikawa/lessonforge/internal/config"
)

// OpenAISynthesizer implements Synthesizer with the OpenAI speech endpoint.
type OpenAISynthesizer struct {
	client openai.Client
	model  string
	voice  string
}

func NewOpenAISynthesizer(cfg config.OpenAIConfig, opts ...option.RequestOption) *OpenAISynthesizer {
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	return &OpenAISynthesizer{
		client: openai.NewClient(opts...),
		model:  cfg.TTSModel,
		voice:  cfg.TTSVoice,
	}
}

// Synthesize returns WAV audio so the transcoder gets a lossless input.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	res, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          text,
		Model:          openai.SpeechModel(s.model),
		Voice:          openai.AudioSpeechNewParamsVoice(s.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatWAV,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read speech response: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("openai speech: empty audio")
	}
	return data, nil
}
