package audio_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/lessonforge/internal/audio"
	mock_audio "github.com/at-ishikawa/lessonforge/internal/mocks/audio"
)

func TestPipeline_Process(t *testing.T) {
	items := []audio.Item{
		{Kind: audio.KindVocabulary, Text: "life-threatening"},
		{Kind: audio.KindVocabulary, Text: "diagnosis"},
		{Kind: audio.KindExpression, Text: "Break a leg!"},
	}

	tests := []struct {
		name      string
		setupMock func(synth *mock_audio.MockSynthesizer, trans *mock_audio.MockTranscoder, store *mock_audio.MockStorage)
		wantURLs  []string
		wantErrs  []bool
	}{
		{
			name: "all items succeed",
			setupMock: func(synth *mock_audio.MockSynthesizer, trans *mock_audio.MockTranscoder, store *mock_audio.MockStorage) {
				synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, text string) ([]byte, error) {
					return []byte("wav:" + text), nil
				}).Times(3)
				trans.EXPECT().Transcode(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, raw []byte) ([]byte, error) {
					return append([]byte("mp3:"), raw...), nil
				}).Times(3)
				store.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), audio.ContentTypeMP3).DoAndReturn(
					func(_ context.Context, key string, _ []byte, _ string) (string, error) {
						return "https://cdn.example.com/" + key, nil
					}).Times(3)
			},
			wantURLs: []string{
				"https://cdn.example.com/vocab/life-threatening.mp3",
				"https://cdn.example.com/vocab/diagnosis.mp3",
				"https://cdn.example.com/expressions/break-a-leg.mp3",
			},
			wantErrs: []bool{false, false, false},
		},
		{
			name: "synthesis failure is isolated to its item",
			setupMock: func(synth *mock_audio.MockSynthesizer, trans *mock_audio.MockTranscoder, store *mock_audio.MockStorage) {
				synth.EXPECT().Synthesize(gomock.Any(), "diagnosis").Return(nil, errors.New("rate limited"))
				synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).Return([]byte("wav"), nil).Times(2)
				trans.EXPECT().Transcode(gomock.Any(), gomock.Any()).Return([]byte("mp3"), nil).Times(2)
				store.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, key string, _ []byte, _ string) (string, error) {
						return "https://cdn.example.com/" + key, nil
					}).Times(2)
			},
			wantURLs: []string{
				"https://cdn.example.com/vocab/life-threatening.mp3",
				"",
				"https://cdn.example.com/expressions/break-a-leg.mp3",
			},
			wantErrs: []bool{false, true, false},
		},
		{
			name: "transcode and upload failures are isolated",
			setupMock: func(synth *mock_audio.MockSynthesizer, trans *mock_audio.MockTranscoder, store *mock_audio.MockStorage) {
				synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, text string) ([]byte, error) {
					return []byte(text), nil
				}).Times(3)
				trans.EXPECT().Transcode(gomock.Any(), []byte("life-threatening")).Return(nil, errors.New("ffmpeg exited"))
				trans.EXPECT().Transcode(gomock.Any(), gomock.Any()).Return([]byte("mp3"), nil).Times(2)
				store.EXPECT().Upload(gomock.Any(), "vocab/diagnosis.mp3", gomock.Any(), gomock.Any()).Return("", errors.New("503"))
				store.EXPECT().Upload(gomock.Any(), "expressions/break-a-leg.mp3", gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/expressions/break-a-leg.mp3", nil)
			},
			wantURLs: []string{"", "", "https://cdn.example.com/expressions/break-a-leg.mp3"},
			wantErrs: []bool{true, true, false},
		},
		{
			name: "panic in a step is recovered",
			setupMock: func(synth *mock_audio.MockSynthesizer, trans *mock_audio.MockTranscoder, store *mock_audio.MockStorage) {
				synth.EXPECT().Synthesize(gomock.Any(), "life-threatening").DoAndReturn(func(context.Context, string) ([]byte, error) {
					panic("boom")
				})
				synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).Return([]byte("wav"), nil).Times(2)
				trans.EXPECT().Transcode(gomock.Any(), gomock.Any()).Return([]byte("mp3"), nil).Times(2)
				store.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.example.com/x.mp3", nil).Times(2)
			},
			wantURLs: []string{"", "https://cdn.example.com/x.mp3", "https://cdn.example.com/x.mp3"},
			wantErrs: []bool{true, false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			synth := mock_audio.NewMockSynthesizer(ctrl)
			trans := mock_audio.NewMockTranscoder(ctrl)
			store := mock_audio.NewMockStorage(ctrl)
			tt.setupMock(synth, trans, store)

			p := audio.NewPipeline(synth, trans, store, audio.PipelineOptions{Workers: 2, Timeout: 5 * time.Second})
			got := p.Process(context.Background(), items)

			require.Len(t, got, len(items))
			for i, r := range got {
				assert.Equal(t, items[i], r.Item)
				assert.Equal(t, tt.wantURLs[i], r.URL, "item %d", i)
				if tt.wantErrs[i] {
					assert.Error(t, r.Err, "item %d", i)
				} else {
					assert.NoError(t, r.Err, "item %d", i)
				}
			}
		})
	}
}

func TestPipeline_Process_Empty(t *testing.T) {
	p := audio.NewPipeline(nil, nil, nil, audio.PipelineOptions{})
	assert.Empty(t, p.Process(context.Background(), nil))
}

type fakeSynthesizer struct {
	delay   func(text string) time.Duration
	active  atomic.Int32
	maxSeen atomic.Int32
	calls   atomic.Int32
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.calls.Add(1)
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	select {
	case <-time.After(f.delay(text)):
		return []byte(text), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type passthroughTranscoder struct{}

func (passthroughTranscoder) Transcode(_ context.Context, raw []byte) ([]byte, error) {
	return raw, nil
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *memoryStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = data
	return "mem://" + key, nil
}

func TestPipeline_Process_BoundsConcurrencyAndKeepsOrder(t *testing.T) {
	words := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet",
		"kilo", "lima", "mike", "november", "oscar", "papa", "quebec", "romeo", "sierra", "tango",
		"uniform", "victor", "whiskey", "xray", "yankee", "zulu",
	}
	items := make([]audio.Item, len(words))
	for i, w := range words {
		items[i] = audio.Item{Kind: audio.KindVocabulary, Text: w}
	}

	synth := &fakeSynthesizer{
		// later items finish first so completion order differs from input order
		delay: func(text string) time.Duration {
			return time.Duration(30-len(text)) * time.Millisecond
		},
	}
	p := audio.NewPipeline(synth, passthroughTranscoder{}, &memoryStorage{}, audio.PipelineOptions{Workers: 50, Timeout: 10 * time.Second})

	got := p.Process(context.Background(), items)

	require.Len(t, got, len(items))
	for i, r := range got {
		require.NoError(t, r.Err)
		assert.Equal(t, "mem://vocab/"+words[i]+".mp3", r.URL)
	}
	assert.LessOrEqual(t, int(synth.maxSeen.Load()), audio.MaxWorkers)
	assert.Equal(t, int32(len(items)), synth.calls.Load())
}

func TestPipeline_Process_TimeoutCancelsStragglers(t *testing.T) {
	synth := &fakeSynthesizer{
		delay: func(text string) time.Duration {
			if text == "slow" {
				return time.Hour
			}
			return 0
		},
	}
	p := audio.NewPipeline(synth, passthroughTranscoder{}, &memoryStorage{}, audio.PipelineOptions{Workers: 2, Timeout: 100 * time.Millisecond})

	start := time.Now()
	got := p.Process(context.Background(), []audio.Item{
		{Kind: audio.KindVocabulary, Text: "fast"},
		{Kind: audio.KindVocabulary, Text: "slow"},
	})

	assert.Less(t, time.Since(start), 5*time.Second)
	require.Len(t, got, 2)
	assert.NoError(t, got[0].Err)
	assert.Equal(t, "mem://vocab/fast.mp3", got[0].URL)
	assert.Error(t, got[1].Err)
	assert.Empty(t, got[1].URL)
	assert.Equal(t, "vocab/slow.mp3", got[1].Key)
}
