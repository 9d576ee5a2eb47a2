package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	MaxWorkers     = 10
	DefaultTimeout = 5 * time.Minute

	// stragglerGrace bounds how long cancelled workers are waited for after a timeout.
	stragglerGrace = 5 * time.Second
)

var ErrTimeout = errors.New("audio synthesis timed out")

// Item is one text to voice.
type Item struct {
	Kind Kind
	Text string
}

// Result is the outcome for the item at the same index of the input.
// URL is empty and Err is set when any step failed.
type Result struct {
	Item Item
	Key  string
	URL  string
	Err  error
}

type PipelineOptions struct {
	Workers      int
	Timeout      time.Duration
	MaxKeyLength int
}

// Pipeline runs synthesize, transcode and upload for a batch of items on a bounded worker pool.
type Pipeline struct {
	synthesizer Synthesizer
	transcoder  Transcoder
	storage     Storage
	workers     int
	timeout     time.Duration
	maxKeyLen   int
}

func NewPipeline(synthesizer Synthesizer, transcoder Transcoder, storage Storage, opts PipelineOptions) *Pipeline {
	workers := opts.Workers
	if workers <= 0 || workers > MaxWorkers {
		workers = MaxWorkers
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pipeline{
		synthesizer: synthesizer,
		transcoder:  transcoder,
		storage:     storage,
		workers:     workers,
		timeout:     timeout,
		maxKeyLen:   opts.MaxKeyLength,
	}
}

type indexedResult struct {
	index  int
	result Result
}

// Process voices every item and returns one result per item in input order.
// A failing item never affects the others. Items still running when the timeout expires are cancelled
// and reported with ErrTimeout.
func (p *Pipeline) Process(ctx context.Context, items []Item) []Result {
	results := make([]Result, len(items))
	for i, item := range items {
		results[i] = Result{
			Item: item,
			Key:  StorageKey(item.Kind, item.Text, p.maxKeyLen),
			Err:  ErrTimeout,
		}
	}
	if len(items) == 0 {
		return results
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	workers := min(p.workers, len(items))
	jobs := make(chan int)
	done := make(chan indexedResult, len(items))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				done <- indexedResult{index: i, result: p.processItem(ctx, results[i].Item, results[i].Key)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range items {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	received := collectResults(ctx, done, results)
	cancel()

	if received < len(items) {
		slog.Default().Warn("audio synthesis timed out, cancelling remaining items",
			"completed", received,
			"total", len(items),
			"timeout", p.timeout,
		)
		waitWithGrace(&wg, stragglerGrace)
	} else {
		wg.Wait()
	}

	succeeded := 0
	for _, r := range results {
		if r.Err == nil {
			succeeded++
		}
	}
	slog.Default().Info("audio synthesis finished", "total", len(items), "succeeded", succeeded)
	return results
}

// collectResults stores results by index until all arrived or ctx is done.
// Results already buffered when ctx ends are still recorded.
func collectResults(ctx context.Context, done <-chan indexedResult, results []Result) int {
	received := 0
	for received < len(results) {
		select {
		case r := <-done:
			results[r.index] = r.result
			received++
		case <-ctx.Done():
			for received < len(results) {
				select {
				case r := <-done:
					results[r.index] = r.result
					received++
				default:
					return received
				}
			}
		}
	}
	return received
}

func waitWithGrace(wg *sync.WaitGroup, grace time.Duration) {
	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(grace):
		slog.Default().Warn("audio workers did not stop within the grace period", "grace", grace)
	}
}

func (p *Pipeline) processItem(ctx context.Context, item Item, key string) (result Result) {
	result = Result{Item: item, Key: key}
	defer func() {
		if r := recover(); r != nil {
			result.URL = ""
			result.Err = fmt.Errorf("panic while processing audio: %v", r)
		}
		if result.Err != nil {
			slog.Default().Warn("audio item failed, continuing without audio",
				"kind", item.Kind,
				"text", item.Text,
				"error", result.Err,
			)
		}
	}()

	raw, err := p.synthesizer.Synthesize(ctx, item.Text)
	if err != nil {
		result.Err = fmt.Errorf("synthesize %q: %w", item.Text, err)
		return result
	}
	encoded, err := p.transcoder.Transcode(ctx, raw)
	if err != nil {
		result.Err = fmt.Errorf("transcode %q: %w", item.Text, err)
		return result
	}
	url, err := p.storage.Upload(ctx, key, encoded, ContentTypeMP3)
	if err != nil {
		result.Err = fmt.Errorf("upload %s: %w", key, err)
		return result
	}
	result.URL = url
	return result
}
